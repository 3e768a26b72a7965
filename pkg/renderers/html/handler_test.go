package html

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-formflow/pkg/forms"
	"github.com/goliatone/go-formflow/pkg/submit"
	"github.com/goliatone/go-formflow/pkg/testsupport"
	"github.com/goliatone/go-formflow/pkg/validation"
)

func newSignInHandler(t *testing.T, login http.HandlerFunc) (*Handler, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		login(w, r)
	}))
	t.Cleanup(srv.Close)

	renderer, err := New(WithFormID("signin"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mount := func(_ *http.Request, nav submit.Navigator) (Form, error) {
		return forms.NewSignIn(forms.SignInConfig{
			Endpoint:  srv.URL,
			Navigator: nav,
			Logger:    testsupport.NopLogger{},
		})
	}
	return NewHandler(renderer, mount, WithHandlerLogger(testsupport.NopLogger{})), &hits
}

func postForm(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerGetRendersEmptyForm(t *testing.T) {
	h, _ := newSignInHandler(t, func(http.ResponseWriter, *http.Request) {})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signin", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="mobile"`) || !strings.Contains(body, "disabled") {
		t.Fatalf("expected empty, disabled form\n%s", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestHandlerPostSuccessRedirects(t *testing.T) {
	h, hits := newSignInHandler(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"token":"abc"}`)
	})

	rec := postForm(h, url.Values{"mobile": {"9876543210"}, "password": {"x"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d\n%s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one login request, got %d", hits.Load())
	}
}

func TestHandlerPostIncompleteMobile(t *testing.T) {
	h, hits := newSignInHandler(t, func(http.ResponseWriter, *http.Request) {})

	rec := postForm(h, url.Values{"mobile": {"12345"}, "password": {"x"}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), validation.MessageMobileIncomplete) {
		t.Fatalf("expected incomplete mobile message\n%s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `value="12345"`) {
		t.Fatalf("expected entered value to be kept\n%s", rec.Body.String())
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no login request, got %d", hits.Load())
	}
}

func TestHandlerPostServerFailure(t *testing.T) {
	h, _ := newSignInHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Invalid credentials"}`)
	})

	rec := postForm(h, url.Values{"mobile": {"9876543210"}, "password": {"wrong"}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `role="alert">Invalid credentials</p>`) {
		t.Fatalf("expected server message\n%s", rec.Body.String())
	}
}

func TestHandlerPostInvalidDecimalIsNotApplied(t *testing.T) {
	var applied atomic.Int32
	renderer, err := New(WithFormID("filter"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mount := func(*http.Request, submit.Navigator) (Form, error) {
		return forms.NewFilter(forms.FilterConfig{
			Handler: func(context.Context, map[string]string) (bool, error) {
				applied.Add(1)
				return true, nil
			},
			Logger: testsupport.NopLogger{},
		})
	}
	h := NewHandler(renderer, mount, WithHandlerLogger(testsupport.NopLogger{}))

	rec := postForm(h, url.Values{"nsd": {"abc"}, "vehicle_num": {"MH12"}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please enter a number") {
		t.Fatalf("expected nsd error next to the field\n%s", rec.Body.String())
	}
	if applied.Load() != 0 {
		t.Fatalf("filter must not be applied, got %d calls", applied.Load())
	}
}

func TestHandlerRejectsOtherMethods(t *testing.T) {
	h, _ := newSignInHandler(t, func(http.ResponseWriter, *http.Request) {})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/signin", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if rec.Header().Get("Allow") == "" {
		t.Fatalf("expected Allow header")
	}
}

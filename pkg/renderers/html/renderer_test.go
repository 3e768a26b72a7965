package html

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/forms"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/submit"
	"github.com/goliatone/go-formflow/pkg/testsupport"
	"github.com/goliatone/go-formflow/pkg/validation"
)

func newForm(t *testing.T, pipeline submit.Pipeline) *controller.Controller {
	t.Helper()
	s := schema.Must(
		schema.Field{Name: "mobile", Label: "<b>Mobile Number</b>", Placeholder: "Enter Mobile Number", MaxLength: schema.Len(10), Validator: validation.MobileNumber},
		schema.Field{Name: "password", Label: "Password", Kind: schema.KindPassword, Required: true},
		schema.Field{Name: "remember_me", Label: "Remember me", Kind: schema.KindCheckbox},
	)
	if pipeline == nil {
		pipeline = submit.PipelineFunc(func(context.Context, map[string]string) submit.Outcome {
			return submit.Success(nil)
		})
	}
	c, err := controller.New(s, pipeline,
		controller.WithPolicy(controller.Policy{Field: "mobile", Check: validation.MobileComplete}),
		controller.WithLogger(testsupport.NopLogger{}),
	)
	if err != nil {
		t.Fatalf("controller.New: %v", err)
	}
	return c
}

func mustRender(t *testing.T, r *Renderer, view View) string {
	t.Helper()
	out, written := testsupport.CaptureOutput(t, func(w io.Writer) (string, error) {
		return r.Render(view, w)
	})
	if written != out {
		t.Fatalf("writer output mismatch\nwant: %q\n got: %q", out, written)
	}
	return out
}

func TestRenderFilterGolden(t *testing.T) {
	r, err := New(WithFormID("filter"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	panel, err := forms.NewFilter(forms.FilterConfig{
		Handler: func(context.Context, map[string]string) (bool, error) { return true, nil },
		Logger:  testsupport.NopLogger{},
	})
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}

	got := mustRender(t, r, panel)
	path := filepath.Join("testdata", "filter.golden")
	if testsupport.WriteMaybeGolden(t, path, []byte(got)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, path)
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("filter markup mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderInitialState(t *testing.T) {
	r, err := New(WithAction("/login"), WithFormID("signin"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out := mustRender(t, r, newForm(t, nil))

	for _, want := range []string{
		`action="/login"`,
		`id="signin-mobile" type="text" name="mobile" value=""`,
		`placeholder="Enter Mobile Number"`,
		`maxlength="10"`,
		`type="password" name="password"`,
		`<input type="checkbox" name="remember_me" value="true">`,
		`<button type="submit" disabled>Submit</button>`,
		`>Mobile Number</label>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "<b>") {
		t.Fatalf("expected label markup to be stripped\n%s", out)
	}
	if strings.Contains(out, "formflow__error") {
		t.Fatalf("expected no form error block\n%s", out)
	}
}

func TestRenderFieldErrorsAndSubmittable(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	form := newForm(t, nil)
	if _, err := form.OnChange("mobile", "98x"); err != nil {
		t.Fatalf("OnChange: %v", err)
	}

	out := mustRender(t, r, form)
	if !strings.Contains(out, `formflow__field--invalid`) || !strings.Contains(out, validation.MessageMobileInvalid) {
		t.Fatalf("expected mobile error in output\n%s", out)
	}
	if !strings.Contains(out, `aria-invalid="true"`) {
		t.Fatalf("expected aria-invalid marker\n%s", out)
	}

	for name, raw := range map[string]string{"mobile": "9876543210", "password": "secret", "remember_me": "true"} {
		if _, err := form.OnChange(name, raw); err != nil {
			t.Fatalf("OnChange(%s): %v", name, err)
		}
	}
	out = mustRender(t, r, form)
	if strings.Contains(out, "disabled") {
		t.Fatalf("expected submit to be enabled\n%s", out)
	}
	if !strings.Contains(out, `value="9876543210"`) || !strings.Contains(out, `value="true" checked>`) {
		t.Fatalf("expected committed values in output\n%s", out)
	}
}

func TestRenderFormErrorIsEscaped(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	form := newForm(t, submit.PipelineFunc(func(context.Context, map[string]string) submit.Outcome {
		return submit.Failure(submit.FailureStatus, "Invalid <script>x</script>& expired")
	}))
	for name, raw := range map[string]string{"mobile": "9876543210", "password": "secret"} {
		if _, err := form.OnChange(name, raw); err != nil {
			t.Fatalf("OnChange(%s): %v", name, err)
		}
	}
	if _, err := form.OnSubmit(context.Background()); err == nil {
		t.Fatalf("expected submit failure")
	}

	out := mustRender(t, r, form)
	if !strings.Contains(out, `<p class="formflow__error" role="alert">Invalid &amp; expired</p>`) {
		t.Fatalf("expected sanitized form error\n%s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected script to be stripped\n%s", out)
	}
}

func TestRenderCustomTemplate(t *testing.T) {
	files := fstest.MapFS{
		"mini.tmpl": &fstest.MapFile{Data: []byte(`{% for field in fields %}[{{ field.name }}={{ field.value }}]{% endfor %}`)},
	}
	r, err := New(WithTemplatesFS(files), WithTemplate("mini.tmpl"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	form := newForm(t, nil)
	if _, err := form.OnChange("mobile", "98765"); err != nil {
		t.Fatalf("OnChange: %v", err)
	}
	out := mustRender(t, r, form)
	if want := "[mobile=98765][password=][remember_me=]"; out != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, out)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := New(WithTemplatesFS(fstest.MapFS{}), WithTemplate("missing.tmpl")); err == nil {
		t.Fatalf("expected missing template error")
	}
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Render(nil); !errors.Is(err, ErrNilView) {
		t.Fatalf("expected ErrNilView, got %v", err)
	}
}

package html

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/submit"
	"github.com/goliatone/go-formflow/pkg/validation"
)

const maxFormMemory = 1 << 20

// Form is a mounted form the handler can drive for one request.
type Form interface {
	View
	OnChange(name, raw string) (validation.Result, error)
	OnSubmit(ctx context.Context) (submit.Outcome, error)
	Dispose()
}

// MountFunc builds a fresh form for a request. nav receives the route the
// form opens after a successful submission; the handler turns it into a
// redirect.
type MountFunc func(r *http.Request, nav submit.Navigator) (Form, error)

// Logger is the minimal logging surface used by Handler.
type Logger interface {
	Printf(format string, args ...any)
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger overrides the handler's logger.
func WithHandlerLogger(logger Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Handler serves a form over HTTP: GET renders a freshly mounted form, POST
// replays the posted values through OnChange and submits. Every request gets
// its own form, so no state is shared between visitors.
type Handler struct {
	renderer *Renderer
	mount    MountFunc
	logger   Logger
}

// NewHandler wires renderer and mount into an http.Handler.
func NewHandler(renderer *Renderer, mount MountFunc, options ...HandlerOption) *Handler {
	h := &Handler{
		renderer: renderer,
		mount:    mount,
		logger:   log.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.serveForm(w, r)
	case http.MethodPost:
		h.serveSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *Handler) serveForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.mount(r, submit.NavigatorFunc(func(context.Context, string) error { return nil }))
	if err != nil {
		h.fail(w, "mount form", err)
		return
	}
	defer form.Dispose()
	h.write(w, http.StatusOK, form)
}

func (h *Handler) serveSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	var redirect string
	nav := submit.NavigatorFunc(func(_ context.Context, route string) error {
		redirect = route
		return nil
	})
	form, err := h.mount(r, nav)
	if err != nil {
		h.fail(w, "mount form", err)
		return
	}
	defer form.Dispose()

	for _, field := range form.Schema().Fields() {
		raw := r.PostFormValue(field.Name)
		if field.Kind == schema.KindCheckbox {
			raw = strconv.FormatBool(raw != "")
		}
		if _, err := form.OnChange(field.Name, raw); err != nil {
			h.fail(w, "apply "+field.Name, err)
			return
		}
	}

	_, err = form.OnSubmit(r.Context())
	var serr *submit.Error
	switch {
	case err == nil && redirect != "":
		http.Redirect(w, r, redirect, http.StatusSeeOther)
	case err == nil:
		h.write(w, http.StatusOK, form)
	case errors.Is(err, controller.ErrValidation), errors.As(err, &serr):
		h.write(w, http.StatusUnprocessableEntity, form)
	default:
		h.fail(w, "submit", err)
	}
}

func (h *Handler) write(w http.ResponseWriter, status int, form View) {
	markup, err := h.renderer.Render(form)
	if err != nil {
		h.fail(w, "render", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(markup)); err != nil {
		h.logger.Printf("html: write response: %v", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, step string, err error) {
	h.logger.Printf("html: %s: %v", step, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

package html

import (
	"bytes"
	"errors"
	"fmt"
	stdhtml "html"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/store"
)

// ErrNilView is returned when Render receives no form.
var ErrNilView = errors.New("html: form is nil")

// View is the read side of a form controller.
type View interface {
	Schema() *schema.Schema
	State() store.State
	IsSubmittable() bool
	FormError() string
}

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS   fs.FS
	templateName string
	action       string
	formID       string
	submitLabel  string
	resetLabel   string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplate selects the template file rendered from the bundle.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.templateName = trimmed
		}
	}
}

// WithAction sets the form's action URL.
func WithAction(action string) Option {
	return func(cfg *config) {
		cfg.action = strings.TrimSpace(action)
	}
}

// WithFormID sets the id attribute; field ids are derived from it.
func WithFormID(id string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			cfg.formID = trimmed
		}
	}
}

// WithLabels overrides the submit and reset button captions.
func WithLabels(submit, reset string) Option {
	return func(cfg *config) {
		if submit != "" {
			cfg.submitLabel = submit
		}
		if reset != "" {
			cfg.resetLabel = reset
		}
	}
}

// Renderer turns a form's state into markup.
type Renderer struct {
	mu       sync.Mutex
	cfg      config
	set      *pongo2.TemplateSet
	template *pongo2.Template
	policy   *bluemonday.Policy
}

// New constructs a renderer applying any provided options. The template is
// parsed eagerly so syntax errors surface here.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		templateName: DefaultTemplate,
		formID:       "formflow",
		submitLabel:  "Submit",
		resetLabel:   "Reset",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	set := pongo2.NewSet("formflow", pongo2.NewFSLoader(cfg.templateFS))
	tmpl, err := set.FromFile(cfg.templateName)
	if err != nil {
		return nil, fmt.Errorf("html: load template %q: %w", cfg.templateName, err)
	}

	return &Renderer{
		cfg:      cfg,
		set:      set,
		template: tmpl,
		policy:   bluemonday.StrictPolicy(),
	}, nil
}

// Render executes the template against view and returns the markup. When
// writers are supplied the result is also written to each of them.
func (r *Renderer) Render(view View, out ...io.Writer) (string, error) {
	if view == nil {
		return "", ErrNilView
	}

	ctx := r.context(view)

	var buf bytes.Buffer
	r.mu.Lock()
	err := r.template.ExecuteWriter(ctx, &buf)
	r.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("html: execute template %q: %w", r.cfg.templateName, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (r *Renderer) context(view View) pongo2.Context {
	state := view.State()
	fields := view.Schema().Fields()

	items := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		value := state.Value(field.Name)
		item := map[string]any{
			"name":        field.Name,
			"label":       r.text(field.Label),
			"type":        string(field.Kind),
			"value":       r.text(value),
			"checked":     field.Kind == schema.KindCheckbox && value == "true",
			"placeholder": r.text(field.Placeholder),
			"required":    field.Required,
			"error":       r.text(state.Error(field.Name)),
			"max_length":  0,
		}
		if item["label"] == "" {
			item["label"] = field.Name
		}
		if field.MaxLength != nil {
			item["max_length"] = *field.MaxLength
		}
		items = append(items, item)
	}

	return pongo2.Context{
		"form": map[string]any{
			"id":           r.cfg.formID,
			"action":       r.cfg.action,
			"error":        r.text(view.FormError()),
			"submittable":  view.IsSubmittable(),
			"submit_label": r.cfg.submitLabel,
			"reset_label":  r.cfg.resetLabel,
		},
		"fields": items,
	}
}

// text strips markup and decodes entities; pongo2 escapes the result again.
func (r *Renderer) text(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(stdhtml.UnescapeString(r.policy.Sanitize(raw)))
}

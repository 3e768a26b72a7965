package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/store"
	"github.com/goliatone/go-formflow/pkg/submit"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Form is the controller surface a Session drives. *controller.Controller
// and the types in pkg/forms satisfy it.
type Form interface {
	Schema() *schema.Schema
	State() store.State
	OnChange(name, raw string) (validation.Result, error)
	OnSubmit(ctx context.Context) (submit.Outcome, error)
	OnReset()
	IsSubmittable() bool
	FormError() string
}

var _ Form = (*controller.Controller)(nil)

const (
	actionSubmit = "Submit"
	actionEdit   = "Edit fields"
	actionReset  = "Reset"
	actionCancel = "Cancel"
)

// Session runs a form in a terminal.
type Session struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	maxAttempts  int
}

// New constructs a session with defaults (survey driver, JSON output).
func New(options ...Option) *Session {
	s := &Session{
		outputFormat: OutputFormatJSON,
		theme: Theme{
			ErrorPrefix: "✗ ",
			InfoPrefix:  "",
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	return s
}

// ContentType reports the serialization format used by Encode.
func (s *Session) ContentType() string {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run prompts every field, then loops on the action menu until the form is
// submitted successfully or the user cancels.
func (s *Session) Run(ctx context.Context, form Form) (submit.Outcome, error) {
	if ctx == nil {
		return submit.Outcome{}, errors.New("tui: context is required")
	}
	if form == nil {
		return submit.Outcome{}, ErrNoForm
	}

	fields := form.Schema().Fields()
	pending := fields
	for {
		for _, field := range pending {
			if err := s.promptField(ctx, form, field); err != nil {
				return submit.Outcome{}, err
			}
		}

		action, err := s.chooseAction(ctx, form)
		if err != nil {
			return submit.Outcome{}, err
		}

		switch action {
		case actionSubmit:
			outcome, err := form.OnSubmit(ctx)
			var serr *submit.Error
			switch {
			case err == nil:
				return outcome, nil
			case errors.Is(err, controller.ErrValidation):
				pending = invalidFields(fields, form.State())
				s.reportErrors(ctx, pending, form.State())
			case errors.As(err, &serr):
				s.errorf(ctx, "%s", form.FormError())
				pending = nil
			default:
				return outcome, err
			}
		case actionEdit:
			pending = fields
		case actionReset:
			form.OnReset()
			pending = fields
		default:
			return submit.Outcome{}, ErrAborted
		}
	}
}

// Encode serializes values using the configured output format.
func (s *Session) Encode(values map[string]string) ([]byte, error) {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func (s *Session) promptField(ctx context.Context, form Form, field schema.Field) error {
	attempts := 0
	for {
		raw, err := s.ask(ctx, field, form.State().Value(field.Name))
		if err != nil {
			return err
		}
		res, err := form.OnChange(field.Name, raw)
		if err != nil {
			return err
		}
		if res.OK() {
			return nil
		}
		s.errorf(ctx, "%s: %s", displayLabel(field), res.Message())
		attempts++
		if s.maxAttempts > 0 && attempts >= s.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
		}
	}
}

func (s *Session) ask(ctx context.Context, field schema.Field, current string) (string, error) {
	label := displayLabel(field)
	switch field.Kind {
	case schema.KindPassword:
		return s.driver.Password(ctx, InputConfig{Message: label, Help: field.Placeholder})
	case schema.KindCheckbox:
		checked, _ := strconv.ParseBool(current)
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: checked})
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(ok), nil
	default:
		return s.driver.Input(ctx, InputConfig{Message: label, Default: current, Help: field.Placeholder})
	}
}

func (s *Session) chooseAction(ctx context.Context, form Form) (string, error) {
	var options []string
	if form.IsSubmittable() {
		options = append(options, actionSubmit)
	} else {
		s.infof(ctx, "Submit is disabled until every field is complete and valid.")
	}
	options = append(options, actionEdit, actionReset, actionCancel)

	idx, err := s.driver.Select(ctx, SelectConfig{Message: "What next?", Options: options})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return actionCancel, nil
	}
	return options[idx], nil
}

func (s *Session) reportErrors(ctx context.Context, fields []schema.Field, state store.State) {
	for _, field := range fields {
		s.errorf(ctx, "%s: %s", displayLabel(field), state.Error(field.Name))
	}
}

func (s *Session) errorf(ctx context.Context, format string, args ...any) {
	_ = s.driver.Info(ctx, s.theme.ErrorPrefix+fmt.Sprintf(format, args...))
}

func (s *Session) infof(ctx context.Context, format string, args ...any) {
	_ = s.driver.Info(ctx, s.theme.InfoPrefix+fmt.Sprintf(format, args...))
}

func invalidFields(fields []schema.Field, state store.State) []schema.Field {
	var out []schema.Field
	for _, field := range fields {
		if state.Error(field.Name) != "" {
			out = append(out, field)
		}
	}
	return out
}

func displayLabel(field schema.Field) string {
	label := strings.TrimSpace(strings.TrimSuffix(field.Label, ":"))
	if label != "" {
		return label
	}
	return field.Name
}

func flattenForm(values map[string]string) string {
	flattened := url.Values{}
	for key, value := range values {
		flattened.Set(key, value)
	}
	return flattened.Encode()
}

func prettyPrint(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, values[key])
	}
	return b.String()
}

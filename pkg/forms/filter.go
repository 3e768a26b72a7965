package forms

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/store"
	"github.com/goliatone/go-formflow/pkg/submit"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Filter field names and the shared store slice backing the panel.
const (
	FieldVehicleNumber = "vehicle_num"
	FieldNSD           = "nsd"

	FilterSlice = "lowNsdFilter"
)

// FilterCriteria is the typed view of the filter panel values.
type FilterCriteria struct {
	VehicleNumber string `json:"vehicle_num"`
	NSDThreshold  string `json:"nsd"`
}

// CriteriaFromValues reads criteria out of filter form values.
func CriteriaFromValues(values map[string]string) FilterCriteria {
	return FilterCriteria{
		VehicleNumber: values[FieldVehicleNumber],
		NSDThreshold:  values[FieldNSD],
	}
}

// FilterSchema declares the low NSD filter panel.
func FilterSchema() *schema.Schema {
	return schema.Must(
		schema.Field{
			Name:        FieldVehicleNumber,
			Label:       "Vehicle Number:",
			Kind:        schema.KindText,
			Placeholder: "Enter Vehicle Number",
		},
		schema.Field{
			Name:        FieldNSD,
			Label:       "NSD Less Than:",
			Kind:        schema.KindText,
			Placeholder: "Enter NSD(e.g. 4.00, 2.50)",
			Validator:   validation.Decimal(""),
		},
	)
}

// FilterConfig collects the filter panel collaborators.
type FilterConfig struct {
	// Handler receives the applied values; returning done=true hides the
	// panel through Closer.
	Handler submit.Handler
	Closer  submit.Closer
	// Store is the shared slice; when nil the panel gets a private store.
	Store  store.Store
	Logger controller.Logger
	Schema *schema.Schema
}

// Filter is a mounted filter panel.
type Filter struct {
	*controller.Controller
}

// NewFilter mounts the panel, reinitialising the shared slice.
func NewFilter(cfg FilterConfig) (*Filter, error) {
	s := cfg.Schema
	if s == nil {
		s = FilterSchema()
	}
	lc := submit.NewLifecycle()
	opts := []submit.CallbackOption{
		submit.WithCloser(submit.GuardCloser(lc, cfg.Closer)),
	}
	if cfg.Logger != nil {
		opts = append(opts, submit.WithCallbackLogger(cfg.Logger))
	}
	callback := submit.NewCallback(cfg.Handler, opts...)

	ctrl, err := controller.New(s, callback,
		controller.WithLifecycle(lc),
		controller.WithStore(cfg.Store),
		controller.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, err
	}
	return &Filter{Controller: ctrl}, nil
}

// NewSharedFilter mounts the panel on the FilterSlice store of registry.
func NewSharedFilter(registry *store.Registry, cfg FilterConfig) (*Filter, error) {
	if registry != nil {
		cfg.Store = registry.Shared(FilterSlice)
	}
	return NewFilter(cfg)
}

// Apply submits the current values to the handler. A successful apply
// reopens the panel so it can be applied again with the same values.
func (f *Filter) Apply(ctx context.Context) (submit.Outcome, error) {
	outcome, err := f.OnSubmit(ctx)
	if err == nil {
		f.Reopen()
	}
	return outcome, err
}

// Criteria returns the currently committed criteria.
func (f *Filter) Criteria() FilterCriteria {
	return CriteriaFromValues(f.State().Values)
}

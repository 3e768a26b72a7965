package forms

import (
	"net/http"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/storage"
	"github.com/goliatone/go-formflow/pkg/store"
	"github.com/goliatone/go-formflow/pkg/submit"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Sign-in field names.
const (
	FieldMobile     = "mobile"
	FieldPassword   = "password"
	FieldRememberMe = "remember_me"
)

// DefaultLoginURL is the staging login endpoint.
const DefaultLoginURL = "https://staging.regripindia.com/api/login"

// Credentials is the typed view of a sign-in submission.
type Credentials struct {
	Contact  string `json:"contact"`
	Password string `json:"password"`
}

// CredentialsFromValues reads credentials out of sign-in form values.
func CredentialsFromValues(values map[string]string) Credentials {
	return Credentials{
		Contact:  values[FieldMobile],
		Password: values[FieldPassword],
	}
}

// SignInSchema declares the sign-in form.
func SignInSchema() *schema.Schema {
	return schema.Must(
		schema.Field{
			Name:        FieldMobile,
			Label:       "Mobile Number",
			Kind:        schema.KindText,
			Placeholder: "Enter your 10-digit mobile number",
			MaxLength:   schema.Len(validation.MobileLength),
			Validator:   validation.MobileNumber,
		},
		schema.Field{
			Name:        FieldPassword,
			Label:       "Password",
			Kind:        schema.KindPassword,
			Placeholder: "Enter your password",
		},
		schema.Field{
			Name:  FieldRememberMe,
			Label: "Remember me",
			Kind:  schema.KindCheckbox,
		},
	)
}

// SignInPolicies holds the submit gate requiring a complete mobile number.
func SignInPolicies() []controller.Policy {
	return []controller.Policy{
		{Field: FieldMobile, Check: validation.MobileComplete},
	}
}

// SignInConfig collects the sign-in collaborators. Zero values fall back to
// the staging endpoint, in-memory storage and no navigation.
type SignInConfig struct {
	Endpoint   string
	HTTPClient *http.Client
	Storage    storage.Storage
	Navigator  submit.Navigator
	Route      string
	// Fields renames form values for the login request; empty keeps
	// submit.DefaultSignInMapping.
	Fields []submit.FieldMapping
	Logger controller.Logger
	Store  store.Store
	Schema *schema.Schema
}

// SignIn is a mounted sign-in form.
type SignIn struct {
	*controller.Controller
	remote *submit.Remote
}

// NewSignIn mounts a sign-in form. Navigation is guarded by the controller's
// lifecycle so a result arriving after Dispose never moves the application.
func NewSignIn(cfg SignInConfig) (*SignIn, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultLoginURL
	}
	persisted := cfg.Storage
	if persisted == nil {
		persisted = storage.NewMemory()
	}
	s := cfg.Schema
	if s == nil {
		s = SignInSchema()
	}

	lc := submit.NewLifecycle()
	opts := []submit.RemoteOption{
		submit.WithStorage(persisted),
		submit.WithNavigator(submit.GuardNavigator(lc, cfg.Navigator)),
		submit.WithRoute(cfg.Route),
		submit.WithHTTPClient(cfg.HTTPClient),
		submit.WithFieldMapping(cfg.Fields...),
	}
	if cfg.Logger != nil {
		opts = append(opts, submit.WithLogger(cfg.Logger))
	}
	remote := submit.NewRemote(endpoint, opts...)

	ctrl, err := controller.New(s, remote,
		controller.WithPolicy(SignInPolicies()...),
		controller.WithLifecycle(lc),
		controller.WithStore(cfg.Store),
		controller.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, err
	}
	return &SignIn{Controller: ctrl, remote: remote}, nil
}

// Credentials returns the currently committed credentials.
func (s *SignIn) Credentials() Credentials {
	return CredentialsFromValues(s.State().Values)
}

// Endpoint reports where credentials are posted.
func (s *SignIn) Endpoint() string {
	return s.remote.Endpoint()
}

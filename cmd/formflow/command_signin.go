package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/internal/config"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/storage"
	"github.com/goliatone/go-formflow/pkg/submit"
)

var (
	loginURL    string
	storageKind string
	storagePath string
)

var signInCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with a mobile number and password",
	Long:  "Prompt for credentials, post them to the login endpoint and persist the session on success.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSignIn(cmd.Context(), cmd)
	},
}

func registerSignInCommand(root *cobra.Command) {
	root.AddCommand(signInCmd)

	signInCmd.Flags().StringVar(&loginURL, "login-url", "", "Login endpoint (overrides FORMFLOW_LOGIN_URL)")
	signInCmd.Flags().StringVar(&storageKind, "storage", "", "Session storage backend: memory, file or sqlite (overrides FORMFLOW_STORAGE)")
	signInCmd.Flags().StringVar(&storagePath, "storage-path", "", "Path for file or sqlite storage (overrides FORMFLOW_STORAGE_PATH)")
	signInCmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Re-prompt limit per field (0 = unlimited)")
}

func runSignIn(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg); err != nil {
		return err
	}

	fields, err := loadSchema()
	if err != nil {
		return err
	}

	persisted, closeStorage, err := formflow.OpenStorage(ctx, cfg.Storage, cfg.StoragePath)
	if err != nil {
		return err
	}
	defer closeStorage()

	out := cmd.OutOrStdout()
	form, err := formflow.NewSignIn(formflow.SignInConfig{
		Endpoint:   cfg.LoginURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Storage:    persisted,
		Route:      cfg.DefaultRoute,
		Fields:     cfg.LoginFields,
		Schema:     fields,
		Navigator: submit.NavigatorFunc(func(_ context.Context, route string) error {
			_, err := fmt.Fprintf(out, "navigate: %s\n", route)
			return err
		}),
	})
	if err != nil {
		return err
	}
	defer form.Dispose()

	if _, err := formflow.RunTerminal(ctx, form, tui.WithMaxAttempts(maxAttempts)); err != nil {
		return err
	}

	loggedIn, _, err := persisted.Get(ctx, storage.KeyIsLoggedIn)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "signed in as %s (%s=%s)\n", form.Credentials().Contact, storage.KeyIsLoggedIn, loggedIn)
	return nil
}

func applyOverrides(cfg *config.Config) error {
	if loginURL != "" {
		cfg.LoginURL = loginURL
	}
	if storageKind == "" && storagePath == "" {
		return nil
	}
	kind, path := cfg.Storage, storagePath
	if storageKind != "" {
		kind = storageKind
	}
	return cfg.SetStorage(kind, path)
}

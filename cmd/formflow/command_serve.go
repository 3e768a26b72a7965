package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/internal/config"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/storage"
	"github.com/goliatone/go-formflow/pkg/submit"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sign-in form and filter panel over HTTP",
	Long:  "Serve /signin and /filter as server-rendered forms. Every request mounts its own form; successful sign-ins redirect to the configured route.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func registerServeCommand(root *cobra.Command) {
	root.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&loginURL, "login-url", "", "Login endpoint (overrides FORMFLOW_LOGIN_URL)")
	serveCmd.Flags().StringVar(&storageKind, "storage", "", "Session storage backend: memory, file or sqlite (overrides FORMFLOW_STORAGE)")
	serveCmd.Flags().StringVar(&storagePath, "storage-path", "", "Path for file or sqlite storage (overrides FORMFLOW_STORAGE_PATH)")
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	router, err := newRouter(cfg, persisted, fields != nil)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("formflow: listening on %s", serveAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newRouter mounts the sign-in and filter handlers. A --schema override only
// applies to the filter panel when filterSchema is set; sign-in keeps its
// built-in fields so the submit policy always has a mobile field.
func newRouter(cfg *config.Config, persisted storage.Storage, filterSchema bool) (http.Handler, error) {
	signInRenderer, err := html.New(html.WithFormID("signin"), html.WithAction("/signin"), html.WithLabels("Sign In", ""))
	if err != nil {
		return nil, err
	}
	filterRenderer, err := html.New(html.WithFormID("filter"), html.WithAction("/filter"), html.WithLabels("Apply", ""))
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	signIn := html.NewHandler(signInRenderer, func(_ *http.Request, nav submit.Navigator) (html.Form, error) {
		return formflow.NewSignIn(formflow.SignInConfig{
			Endpoint:   cfg.LoginURL,
			HTTPClient: client,
			Storage:    persisted,
			Navigator:  nav,
			Route:      cfg.DefaultRoute,
			Fields:     cfg.LoginFields,
		})
	})

	filter := html.NewHandler(filterRenderer, func(r *http.Request, _ submit.Navigator) (html.Form, error) {
		fc := formflow.FilterConfig{
			Handler: func(_ context.Context, values map[string]string) (bool, error) {
				log.Printf("formflow: filter applied %s: %v", middleware.GetReqID(r.Context()), values)
				return true, nil
			},
		}
		if filterSchema {
			s, err := loadSchema()
			if err != nil {
				return nil, err
			}
			fc.Schema = s
		}
		return formflow.NewFilter(fc)
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/signin", http.StatusFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Method(http.MethodGet, "/signin", signIn)
	r.Method(http.MethodPost, "/signin", signIn)
	r.Method(http.MethodGet, "/filter", filter)
	r.Method(http.MethodPost, "/filter", filter)
	return r, nil
}

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formflow/internal/config"
	"github.com/goliatone/go-formflow/pkg/storage"
)

func executeRoot(t *testing.T, args ...string) string {
	t.Helper()
	renderForm, renderOutput, renderAction, renderValues = "signin", "", "", nil
	openAPIFile, openAPIOpID, templatesDir, schemaFile = "", "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestRenderFilterPrefilled(t *testing.T) {
	out := executeRoot(t, "render", "--form", "filter", "--set", "vehicle_num=MH12", "--set", "nsd=4.50")

	for _, want := range []string{`id="filter"`, `value="MH12"`, `value="4.50"`, "NSD Less Than"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output\n%s", want, out)
		}
	}
}

func TestRenderSignInWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signin.html")
	out := executeRoot(t, "render", "--output", path, "--set", "mobile=98x")

	if !strings.Contains(out, "Form written to") {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "Please enter a valid 10-digit mobile number.") {
		t.Fatalf("expected mobile error in rendered file\n%s", data)
	}
	if !strings.Contains(string(data), `action="https://staging.regripindia.com/api/login"`) {
		t.Fatalf("expected default login action\n%s", data)
	}
}

func TestRenderWithYAMLSchema(t *testing.T) {
	dir := t.TempDir()
	doc := "fields:\n  - name: vehicle_num\n    label: Registration\n  - name: nsd\n    label: Depth\n    validators: [decimal]\n"
	path := filepath.Join(dir, "filter.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	out := executeRoot(t, "render", "--form", "filter", "--schema", path)
	if !strings.Contains(out, ">Registration</label>") || !strings.Contains(out, ">Depth</label>") {
		t.Fatalf("expected YAML labels in output\n%s", out)
	}
}

func TestServeRouter(t *testing.T) {
	cfg := &config.Config{
		LoginURL:     "http://127.0.0.1:0/api/login",
		Storage:      config.StorageMemory,
		Timeout:      time.Second,
		DefaultRoute: "/",
	}
	router, err := newRouter(cfg, storage.NewMemory(), false)
	if err != nil {
		t.Fatalf("newRouter: %v", err)
	}

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/", http.StatusFound, ""},
		{http.MethodGet, "/healthz", http.StatusOK, "ok"},
		{http.MethodGet, "/signin", http.StatusOK, `action="/signin"`},
		{http.MethodGet, "/filter", http.StatusOK, `<button type="submit">Apply</button>`},
		{http.MethodDelete, "/signin", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.status {
			t.Fatalf("%s %s: expected %d, got %d", tt.method, tt.path, tt.status, rec.Code)
		}
		if tt.body != "" && !strings.Contains(rec.Body.String(), tt.body) {
			t.Fatalf("%s %s: expected body to contain %q\n%s", tt.method, tt.path, tt.body, rec.Body.String())
		}
	}
}

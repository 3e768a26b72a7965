package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow/internal/config"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/validation"
)

var (
	envFile      string
	schemaFile   string
	outputFormat string
	maxAttempts  int
)

var rootCmd = &cobra.Command{
	Use:           "formflow",
	Short:         "Sign-in and filter forms driven from the terminal",
	Long:          "formflow runs the credential sign-in form and the low-NSD filter panel interactively, or renders either one as HTML",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Optional .env file to load (defaults to ./.env)")
	rootCmd.PersistentFlags().StringVarP(&schemaFile, "schema", "s", "", "YAML schema overriding the built-in fields")

	registerSignInCommand(rootCmd)
	registerFilterCommand(rootCmd)
	registerRenderCommand(rootCmd)
	registerServeCommand(rootCmd)
}

func loadConfig() (*config.Config, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	return config.Load(log.Default(), files...)
}

// loadSchema returns nil when no --schema flag was given so callers fall
// back to the built-in schema.
func loadSchema() (*schema.Schema, error) {
	path := strings.TrimSpace(schemaFile)
	if path == "" {
		return nil, nil
	}
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	s, err := schema.LoadFS(os.DirFS(dir), name, validation.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", path, err)
	}
	return s, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/forms"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/validation"
)

var (
	renderForm   string
	renderOutput string
	renderAction string
	renderValues []string
	openAPIFile  string
	openAPIOpID  string
	templatesDir string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a form as HTML",
	Long:  "Render the sign-in form or the filter panel as HTML, optionally prefilled through the same validation as interactive input.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd.Context(), cmd)
	},
}

func registerRenderCommand(root *cobra.Command) {
	root.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderForm, "form", "f", "signin", "Form to render: signin or filter")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (stdout if empty)")
	renderCmd.Flags().StringVar(&renderAction, "action", "", "Form action URL")
	renderCmd.Flags().StringArrayVar(&renderValues, "set", nil, "Prefill a field as name=value (repeatable)")
	renderCmd.Flags().StringVar(&openAPIFile, "openapi", "", "OpenAPI document to derive the fields from")
	renderCmd.Flags().StringVar(&openAPIOpID, "operation", "", "Operation ID inside --openapi")
	renderCmd.Flags().StringVar(&templatesDir, "templates", "", "Directory holding an alternate form.tmpl")
}

func runRender(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fields, err := renderSchema(ctx)
	if err != nil {
		return err
	}

	var view interface {
		html.View
		OnChange(name, raw string) (validation.Result, error)
		Dispose()
	}
	switch strings.ToLower(renderForm) {
	case "signin":
		form, err := formflow.NewSignIn(formflow.SignInConfig{Schema: fields, Endpoint: renderAction})
		if err != nil {
			return err
		}
		view = form
	case "filter":
		form, err := formflow.NewFilter(formflow.FilterConfig{
			Schema:  fields,
			Handler: func(context.Context, map[string]string) (bool, error) { return true, nil },
		})
		if err != nil {
			return err
		}
		view = form
	default:
		return fmt.Errorf("unknown form %q (want signin or filter)", renderForm)
	}
	defer view.Dispose()

	for _, pair := range renderValues {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q (want name=value)", pair)
		}
		if _, err := view.OnChange(strings.TrimSpace(name), value); err != nil {
			return err
		}
	}

	action := renderAction
	if action == "" && strings.EqualFold(renderForm, "signin") {
		action = forms.DefaultLoginURL
	}
	opts := []html.Option{html.WithAction(action), html.WithFormID(strings.ToLower(renderForm))}
	if templatesDir != "" {
		opts = append(opts, html.WithTemplatesDir(templatesDir))
	}
	markup, err := formflow.RenderHTML(view, opts...)
	if err != nil {
		return err
	}

	if renderOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), markup)
		return nil
	}
	if err := os.WriteFile(renderOutput, []byte(markup), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", renderOutput)
	return nil
}

func renderSchema(ctx context.Context) (*schema.Schema, error) {
	if openAPIFile == "" {
		return loadSchema()
	}
	if openAPIOpID == "" {
		return nil, fmt.Errorf("--operation is required with --openapi")
	}
	data, err := os.ReadFile(openAPIFile)
	if err != nil {
		return nil, fmt.Errorf("read openapi document: %w", err)
	}
	return schema.FromOpenAPI(ctx, data, openAPIOpID, validation.NewRegistry())
}

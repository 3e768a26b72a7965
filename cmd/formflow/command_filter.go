package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/submit"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Apply the low-NSD vehicle filter",
	Long:  "Prompt for a vehicle number and NSD threshold and print the applied criteria.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFilter(cmd.Context(), cmd)
	},
}

func registerFilterCommand(root *cobra.Command) {
	root.AddCommand(filterCmd)

	filterCmd.Flags().StringVarP(&outputFormat, "output", "o", string(tui.OutputFormatJSON), "Criteria output format: json, form or pretty")
}

func runFilter(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fields, err := loadSchema()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	session := tui.New(tui.WithOutputFormat(tui.OutputFormat(outputFormat)))

	form, err := formflow.NewFilter(formflow.FilterConfig{
		Schema: fields,
		Handler: func(_ context.Context, values map[string]string) (bool, error) {
			payload, err := session.Encode(values)
			if err != nil {
				return false, err
			}
			fmt.Fprintln(out, string(payload))
			return true, nil
		},
		Closer: submit.CloserFunc(func(context.Context) error {
			_, err := fmt.Fprintln(out, "filter panel closed")
			return err
		}),
	})
	if err != nil {
		return err
	}
	defer form.Dispose()

	_, err = session.Run(ctx, form)
	return err
}

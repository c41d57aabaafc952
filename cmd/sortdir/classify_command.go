package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sortdir/internal/category"
	"sortdir/internal/textutil"
)

type classification struct {
	Name       string            `json:"name"`
	Category   category.Category `json:"category"`
	Extension  string            `json:"extension"`
	Normalized string            `json:"normalized"`
}

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "classify <name>...",
		Short: "Show the category and normalized name for file names without touching disk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			table, err := cfg.Table()
			if err != nil {
				return fmt.Errorf("build extension table: %w", err)
			}

			results := make([]classification, 0, len(args))
			for _, name := range args {
				results = append(results, classification{
					Name:       name,
					Category:   table.Classify(name),
					Extension:  category.Extension(name),
					Normalized: textutil.Normalize(name),
				})
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, r.Category.String(), r.Normalized})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tableSpec{headers: []string{"Name", "Category", "Normalized"}, rows: rows}.render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

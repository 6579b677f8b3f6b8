package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type collectionView struct {
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"display_name"`
	SinglePage   bool   `json:"single_page"`
	Field        bool   `json:"field"`
}

func newCollectionsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List known manuscript collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			registry := cfg.Registry()

			views := make([]collectionView, 0)
			for _, abbr := range registry.Abbreviations() {
				views = append(views, collectionView{
					Abbreviation: abbr,
					DisplayName:  registry.DisplayName(abbr),
					SinglePage:   registry.InfersSinglePage(abbr),
					Field:        registry.IsField(abbr),
				})
			}
			if jsonOutput {
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.Abbreviation, v.DisplayName, yesNo(v.SinglePage), yesNo(v.Field)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Abbreviation", "Display Name", "Single Page", "Own Field"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print collections as JSON")
	return cmd
}

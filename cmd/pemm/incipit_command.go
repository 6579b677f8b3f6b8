package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pemm/internal/config"
	"pemm/internal/incipit"
)

func newIncipitCommand(ctx *commandContext) *cobra.Command {
	var incipitsPath string

	cmd := &cobra.Command{
		Use:   "incipit STORY COLLECTION MANUSCRIPT",
		Short: "Look up the recorded incipit of one story instance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Paths.Incipits
			if strings.TrimSpace(incipitsPath) != "" {
				path, err = config.ExpandPath(strings.TrimSpace(incipitsPath))
				if err != nil {
					return err
				}
			}

			table, err := incipit.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			text := table.Get(args[0], args[1], args[2])
			if text == "" {
				fmt.Fprintf(out, "No incipit recorded for story %s in %s %s\n", args[0], args[1], args[2])
				return nil
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&incipitsPath, "incipits", "i", "", "Incipit CSV file")
	return cmd
}

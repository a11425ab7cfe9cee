package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iconidentify/vidseo/internal/language"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported output languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			set := language.NewSet(cfg.Pipeline.IncludeHindi)

			if asJSON {
				return writeJSON(cmd, set.All())
			}

			rows := make([][]string, 0, len(set.All()))
			for _, l := range set.All() {
				def := ""
				if l.Name == language.Default {
					def = "default"
				}
				rows = append(rows, []string{l.Name, l.Code, l.Native, def})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Code", "Native", ""}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print languages as JSON")
	return cmd
}

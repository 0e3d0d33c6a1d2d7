package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// options are the persistent flags shared by all commands.
type options struct {
	configPath string
	backend    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "tagbox",
		Short: "tagbox - tag files from the terminal",
		Long:  "tagbox keeps a catalog of files and hierarchical tags and edits them in an interactive TUI.",
		Example: strings.TrimSpace(`
  # Browse registered files
  tagbox

  # Register files and tag them right away
  tagbox tag ~/photos/*.jpg

  # Find files by path and tag the picked ones
  tagbox find kyoto
`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			return runTUI(e, nil, false)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.yaml (default ~/.config/tagbox/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "Storage backend: auto, json or sqlite (overrides config)")

	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newTagCmd(opts))
	cmd.AddCommand(newFindCmd(opts))
	cmd.AddCommand(newTagsCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newPruneCmd(opts))

	return cmd
}

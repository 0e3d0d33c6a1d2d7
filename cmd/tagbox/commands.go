package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/tagbox/internal/culler"
	"github.com/nikbrunner/tagbox/internal/exporter"
	"github.com/nikbrunner/tagbox/internal/importer"
	"github.com/nikbrunner/tagbox/internal/model"
	"github.com/nikbrunner/tagbox/internal/picker"
	"github.com/nikbrunner/tagbox/internal/search"
	"github.com/spf13/cobra"
)

// withEnv opens the environment around fn.
func withEnv(opts *options, fn func(cmd *cobra.Command, e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(opts)
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(cmd, e, args)
	}
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Register files",
		Args:  cobra.MinimumNArgs(1),
		RunE: withEnv(opts, func(cmd *cobra.Command, e *env, args []string) error {
			files, err := addFiles(e, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %d file(s)\n", len(files))
			return nil
		}),
	}
}

func newTagCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <path>...",
		Short: "Register files and open the tag panel on them",
		Args:  cobra.MinimumNArgs(1),
		RunE: withEnv(opts, func(_ *cobra.Command, e *env, args []string) error {
			files, err := addFiles(e, args)
			if err != nil {
				return err
			}
			return runTUI(e, fileIDs(files), true)
		}),
	}
}

func newFindCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "find <query>...",
		Short: "Fuzzy find files by path and tag the picked ones",
		Args:  cobra.MinimumNArgs(1),
		RunE: withEnv(opts, func(cmd *cobra.Command, e *env, args []string) error {
			query := strings.Join(args, " ")
			results := search.FuzzySearchFiles(e.lib.Files(), query)

			switch len(results) {
			case 0:
				fmt.Fprintf(cmd.OutOrStdout(), "No files found for '%s'\n", query)
				return nil
			case 1:
				return runTUI(e, []string{results[0].File.ID}, true)
			}

			final, err := tea.NewProgram(picker.New(results, query)).Run()
			if err != nil {
				return fmt.Errorf("picker: %w", err)
			}
			p := final.(picker.Picker)
			if p.Cancelled() {
				return nil
			}
			selected := p.SelectedFiles()
			if len(selected) == 0 {
				return nil
			}
			return runTUI(e, fileIDs(selected), true)
		}),
	}
}

func newTagsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags as paths with their file counts",
		Args:  cobra.NoArgs,
		RunE: withEnv(opts, func(cmd *cobra.Command, e *env, _ []string) error {
			out := cmd.OutOrStdout()
			tags := e.lib.Tags()
			if len(tags) == 0 {
				fmt.Fprintln(out, "No tags")
				return nil
			}
			for _, tag := range tags {
				fmt.Fprintf(out, "%s (%d)\n", e.lib.PathString(tag), len(e.lib.FilesWithTag(tag.ID)))
			}
			return nil
		}),
	}
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import files and tags from bookmark HTML",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(opts, func(cmd *cobra.Command, e *env, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			tags, files, err := importer.ParseHTML(f)
			if err != nil {
				return fmt.Errorf("parse HTML: %w", err)
			}

			added, skipped, err := e.lib.Import(tags, files)
			if err != nil {
				return fmt.Errorf("save import: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d files, %d tags", added, len(tags))
			if skipped > 0 {
				fmt.Fprintf(out, " (%d duplicates skipped)", skipped)
			}
			fmt.Fprintln(out)
			return nil
		}),
	}
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export files and tags to bookmark HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: withEnv(opts, func(cmd *cobra.Command, e *env, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				p, err := exporter.DefaultExportPath()
				if err != nil {
					return fmt.Errorf("export path: %w", err)
				}
				path = p
			}

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("create export dir: %w", err)
			}
			if err := os.WriteFile(path, []byte(exporter.ExportHTML(e.lib.Snapshot())), 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		}),
	}
}

func newPruneCmd(opts *options) *cobra.Command {
	var dryRun bool
	var concurrency int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Unregister files that no longer exist on disk",
		Args:  cobra.NoArgs,
		RunE: withEnv(opts, func(cmd *cobra.Command, e *env, _ []string) error {
			out := cmd.OutOrStdout()
			results := culler.CheckFiles(e.lib.Files(), concurrency, nil, nil)

			for _, r := range culler.Filter(results, culler.Unreadable) {
				fmt.Fprintf(out, "skipped %s: %s\n", r.File.Path, r.Error)
			}

			missing := culler.Filter(results, culler.Missing)
			for _, r := range missing {
				if dryRun {
					fmt.Fprintf(out, "missing %s\n", r.File.Path)
					continue
				}
				if err := e.lib.RemoveFile(r.File.ID); err != nil {
					return fmt.Errorf("remove %s: %w", r.File.Path, err)
				}
				fmt.Fprintf(out, "removed %s\n", r.File.Path)
			}

			fmt.Fprintf(out, "%d of %d file(s) missing\n", len(missing), len(results))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Only list missing files")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "Number of parallel checks")
	return cmd
}

// addFiles registers each path, skipping ones that are already known.
func addFiles(e *env, paths []string) ([]model.File, error) {
	files := make([]model.File, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("add %s: %w", p, err)
		}
		f, _, err := e.lib.AddFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func fileIDs(files []model.File) []string {
	ids := make([]string, len(files))
	for i, f := range files {
		ids[i] = f.ID
	}
	return ids
}

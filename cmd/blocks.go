// Package cmd: blocks command.
// Converts Markdown from a file or stdin into editor blocks and prints
// them as a JSON array.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pageconv/core"
	"github.com/gaurav-prasanna/pageconv/core/convert"
	"github.com/gaurav-prasanna/pageconv/core/render"
)

func newBlocksCmd(root *rootFlags) *cobra.Command {
	blocksCmd := &cobra.Command{
		Use:   "blocks <file|->",
		Short: "Convert Markdown to editor blocks JSON",
		Long: `Blocks parses GitHub-Flavored Markdown and prints the equivalent editor
blocks as a JSON array on stdout. Markdown that cannot be represented
yields an empty array unless --strict-images is set.

Examples:
  pageconv blocks notes.md
  cat notes.md | pageconv blocks -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlocks(cmd, root, args[0])
		},
	}
	addBlockFlags(blocksCmd)
	return blocksCmd
}

func runBlocks(cmd *cobra.Command, root *rootFlags, source string) error {
	cfg, logger, err := setup(cmd, root)
	if err != nil {
		return err
	}

	var data []byte
	if source == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}

	svc := convert.New(convert.WithLogger(logger), convert.WithBlockOptions(cfg.BlockOptions()))
	list, err := markdownToBlocks(svc, cfg, string(data))
	if err != nil {
		return err
	}

	out, err := render.NewJSONRenderer(true).Render(core.Document{Blocks: list})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fmt.Errorf("writing to stdout: %w", err)
	}
	logger.Debug("converted markdown", "source", source, "blocks", len(list))
	return nil
}

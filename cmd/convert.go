// Package cmd: convert command.
// This is the main command that orchestrates the pipeline:
// fetch or read → extract → normalize → blocks → render → write.
//
// It handles flag validation, renderer selection and source loading.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pageconv/config"
	"github.com/gaurav-prasanna/pageconv/core"
	"github.com/gaurav-prasanna/pageconv/core/blocks"
	"github.com/gaurav-prasanna/pageconv/core/convert"
	"github.com/gaurav-prasanna/pageconv/core/extract"
	"github.com/gaurav-prasanna/pageconv/core/fetch"
	"github.com/gaurav-prasanna/pageconv/core/output"
	"github.com/gaurav-prasanna/pageconv/core/render"
	"github.com/gaurav-prasanna/pageconv/core/resolve"
)

// convertFlags holds the convert command's own flags. Settings that can
// also come from the config file are read back through config.ApplyFlags.
type convertFlags struct {
	pageURL  string
	pdf      bool
	markdown bool
	json     bool
}

func newConvertCmd(root *rootFlags) *cobra.Command {
	flags := &convertFlags{}

	convertCmd := &cobra.Command{
		Use:   "convert <url|file|->",
		Short: "Convert an HTML page to the specified output format",
		Long: `Convert reads an HTML page from a URL, a file or stdin, optionally narrows
it to its readable article, normalizes it to Markdown and writes it as
Markdown, JSON (metadata, Markdown and editor blocks) or PDF.

Examples:
  pageconv convert https://example.com --markdown
  pageconv convert https://example.com --readable --json --output_dir ./out
  pageconv convert page.html --url https://example.com/page --pdf
  curl -s https://example.com | pageconv convert - --markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, root, flags, args[0])
		},
	}

	f := convertCmd.Flags()
	f.StringVar(&flags.pageURL, "url", "", "Page URL when the source is a file or stdin")

	// Output format flags (mutually exclusive).
	f.BoolVar(&flags.pdf, "pdf", false, "Output PDF")
	f.BoolVar(&flags.markdown, "markdown", false, "Output Markdown")
	f.BoolVar(&flags.json, "json", false, "Output structured JSON")

	// Settings shared with the config file.
	f.Bool("readable", false, "Narrow the page to its readable article first")
	f.String("output_dir", "", "Output directory (default: stdout, or the current directory for PDF)")
	f.String("extractor", "readability", "Article extractor: readability or selector")
	f.Duration("timeout", fetch.DefaultTimeout, "HTTP fetch timeout")
	f.String("user-agent", fetch.DefaultUserAgent, "HTTP User-Agent header")
	addBlockFlags(convertCmd)

	return convertCmd
}

// addBlockFlags registers the block conversion settings on cmd.
func addBlockFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("strict-images", false, "Reject non-http(s) image URLs and report conversion errors")
	cmd.Flags().Bool("truncate", true, "Truncate over-long content instead of failing")
}

func runConvert(cmd *cobra.Command, root *rootFlags, flags *convertFlags, source string) error {
	if err := flags.validate(); err != nil {
		return err
	}
	if flags.pageURL != "" && !resolve.IsValidURL(flags.pageURL) {
		return fmt.Errorf("invalid --url: %s (must be an absolute http(s) URL)", flags.pageURL)
	}

	cfg, logger, err := setup(cmd, root)
	if err != nil {
		return err
	}

	renderer, err := flags.renderer()
	if err != nil {
		return err
	}
	extractor, err := extract.New(cfg.Extractor)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Fetch or read
	htmlText, pageURL, err := loadSource(ctx, cmd.InOrStdin(), source, flags.pageURL, cfg)
	if err != nil {
		return err
	}
	logger.Debug("loaded source", "source", source, "url", pageURL, "bytes", len(htmlText))

	// 2. Extract readable article
	var article *core.Article
	content := htmlText
	if cfg.Readable {
		article, err = extractor.Extract(htmlText, pageURL)
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}
		content = article.Content
	}

	// 3. Normalize to Markdown
	svc := convert.New(convert.WithLogger(logger), convert.WithBlockOptions(cfg.BlockOptions()))
	markdown, err := svc.HTMLToMarkdown(core.HTMLRequest{URL: pageURL, HTML: content})
	if err != nil {
		return err
	}

	doc := core.Document{
		Metadata: extract.Metadata(pageURL, htmlText, article),
		Markdown: markdown,
	}

	// 4. Blocks, for renderers that draw them
	if renderer.NeedsBlocks() {
		doc.Blocks, err = markdownToBlocks(svc, cfg, markdown)
		if err != nil {
			return err
		}
	}

	// 5. Render
	data, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// 6. Write
	writer, err := output.New(cfg.OutputDir, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	name := output.NameFor(source)
	if pageURL != "" {
		name = output.NameFor(pageURL)
	}
	path, err := writer.Write(name, data, renderer.Extension(), isBinary(renderer))
	if err != nil {
		return err
	}
	if path != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	}
	logger.Info("converted", "source", source, "output", path, "blocks", len(doc.Blocks))
	return nil
}

// loadSource returns the page HTML and its URL. URL sources are fetched
// and report their final URL unless pageURL overrides it.
func loadSource(ctx context.Context, stdin io.Reader, source, pageURL string, cfg *config.Config) (string, string, error) {
	switch {
	case resolve.IsValidURL(source):
		result, err := fetch.New(cfg.Fetch.Timeout, cfg.Fetch.UserAgent).Fetch(ctx, source)
		if err != nil {
			return "", "", fmt.Errorf("fetch: %w", err)
		}
		if pageURL == "" {
			pageURL = result.URL
		}
		return result.HTML, pageURL, nil

	case source == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), pageURL, nil

	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", source, err)
		}
		return string(data), pageURL, nil
	}
}

// markdownToBlocks uses the fail-open conversion unless strict image URLs
// are configured, in which case conversion errors are reported.
func markdownToBlocks(svc *convert.Service, cfg *config.Config, markdown string) ([]blocks.Block, error) {
	if !cfg.Blocks.StrictImageURLs {
		return svc.MarkdownToBlocks(core.MarkdownRequest{Markdown: markdown}), nil
	}
	out, err := blocks.Convert(markdown, cfg.BlockOptions())
	if err != nil {
		return nil, fmt.Errorf("blocks: %w", err)
	}
	if out == nil {
		out = []blocks.Block{}
	}
	return out, nil
}

// isBinary reports whether the renderer's output must go to a file.
func isBinary(r core.Renderer) bool {
	_, ok := r.(*render.PDFRenderer)
	return ok
}

// validate checks that exactly one output format is chosen.
func (f *convertFlags) validate() error {
	formatCount := 0
	for _, set := range []bool{f.pdf, f.markdown, f.json} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --pdf, --markdown, or --json")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// renderer creates the appropriate Renderer based on flags.
func (f *convertFlags) renderer() (core.Renderer, error) {
	switch {
	case f.markdown:
		return render.NewMarkdownRenderer(), nil
	case f.json:
		return render.NewJSONRenderer(false), nil
	case f.pdf:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}

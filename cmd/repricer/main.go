// Command repricer adjusts every marker-prefixed amount in an HTML or
// Markdown document and writes the rewritten HTML.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/repricer/internal/render"
	"github.com/dgallion1/repricer/internal/repricer"
	"github.com/spf13/cobra"
)

var (
	adjustment string
	limit      int
	marker     string
	output     string
	markdown   bool
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	rootCmd := &cobra.Command{
		Use:   "repricer [file]",
		Short: "Adjust prices embedded in HTML or Markdown documents",
		Long: `repricer locates marker-prefixed amounts in a document, applies a fixed
or percentage adjustment to each, and rewrites the digits in place while
leaving all surrounding markup untouched. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&adjustment, "adjust", "a", "", `adjustment: a signed number ("-2.46") or percentage ("-14%")`)
	rootCmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum matched nodes to process (0 = unbounded)")
	rootCmd.Flags().StringVarP(&marker, "marker", "m", "$", "currency marker character")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
	rootCmd.Flags().BoolVar(&markdown, "markdown", false, "treat input as Markdown regardless of extension")
	rootCmd.MarkFlagRequired("adjust")

	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	src, name, err := readInput(args)
	if err != nil {
		return err
	}

	if markdown || isMarkdownFile(name) {
		src, err = render.MarkdownToHTML(src)
		if err != nil {
			return err
		}
	}

	if len(marker) != 1 {
		return fmt.Errorf("marker must be a single character, got %q", marker)
	}
	if limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", limit)
	}

	out, _, err := repricer.AdjustHTML(string(src), adjustment, repricer.Options{
		Marker: marker[0],
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return writeOutput(out)
}

func readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, args[0], nil
}

func writeOutput(out string) error {
	if output == "" {
		_, err := io.WriteString(os.Stdout, out)
		return err
	}
	if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}

func isMarkdownFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

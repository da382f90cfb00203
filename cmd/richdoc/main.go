// Package main is the richdoc document converter: it reads a document in
// one supported format and writes it in another.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/richdoc/config"
	"github.com/dshills/richdoc/docjson"
	"github.com/dshills/richdoc/document"
	"github.com/dshills/richdoc/htmlconv"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		inPath      string
		outPath     string
		configPath  string
		pretty      bool
		showVersion bool
	)

	flag.StringVar(&inPath, "in", "", "Input document (.json or .html)")
	flag.StringVar(&outPath, "out", "", "Output document (.json or .html)")
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&pretty, "pretty", false, "Indent JSON output")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "richdoc - rich-text document converter\n\n")
		fmt.Fprintf(os.Stderr, "Usage: richdoc -in <file> -out <file> [options]\n\n")
		fmt.Fprintf(os.Stderr, "The direction is inferred from the file extensions.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  richdoc -in notes.json -out notes.html\n")
		fmt.Fprintf(os.Stderr, "  richdoc -in page.html -out page.json -pretty\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("richdoc %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	if inPath == "" || outPath == "" {
		flag.Usage()
		return 2
	}

	opts, err := config.Load(defaultConfigPath(configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if pretty {
		opts.Pretty = true
	}

	if err := convert(inPath, outPath, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// defaultConfigPath resolves the config file location. An explicit -config
// wins; otherwise richdoc.toml in the user config directory is tried.
func defaultConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "richdoc.toml"
	}
	return filepath.Join(dir, "richdoc", "richdoc.toml")
}

func convert(inPath, outPath string, opts config.Options) error {
	doc, err := read(inPath)
	if err != nil {
		return err
	}

	out, err := render(doc, outPath, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

func read(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	switch formatOf(path) {
	case "json":
		doc, err := docjson.Deserialize(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return doc, nil
	case "html":
		return htmlconv.NewImporter().Import(string(data)), nil
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .json or .html)", filepath.Ext(path))
	}
}

func render(doc *document.Document, path string, opts config.Options) ([]byte, error) {
	switch formatOf(path) {
	case "json":
		if opts.Pretty {
			return docjson.SerializePretty(doc)
		}
		return docjson.Serialize(doc)
	case "html":
		exp := htmlconv.NewExporter(htmlconv.Options{
			FullDocument: true,
			Title:        opts.HTMLTitle,
			CSS:          opts.HTMLStyle,
		})
		return []byte(exp.Export(doc)), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want .json or .html)", filepath.Ext(path))
	}
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".html", ".htm":
		return "html"
	default:
		return ""
	}
}

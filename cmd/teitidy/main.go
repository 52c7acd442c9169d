// Command teitidy normalizes TEI transcription documents.
// It classifies division children, rewrites legacy tag aliases into the TEI
// namespace, canonicalizes attribute order, wraps text runs, prunes empty
// elements, and writes the result back out.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/antchfx/xmlquery"
	"github.com/fatih/color"

	"github.com/corpustools/teitidy/core/tei"
	"github.com/corpustools/teitidy/internal/catalog"
	"github.com/corpustools/teitidy/internal/config"
	"github.com/corpustools/teitidy/internal/ident"
	"github.com/corpustools/teitidy/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for teitidy.
var CLI struct {
	// Global flags
	Config string `name:"config" short:"c" help:"Path to config file" type:"path"`

	Format  FormatCmd  `cmd:"" help:"Normalize a TEI document and write it back out"`
	Inspect InspectCmd `cmd:"" help:"List divisions and the category of each child"`
	Runs    RunsCmd    `cmd:"" help:"List recorded normalization runs"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("teitidy"),
		kong.Description("TEI transcription normalizer and formatter"),
		kong.UsageOnError(),
	)

	cfgPath := CLI.Config
	if cfgPath == "" {
		cfgPath = config.DefaultPath
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.InitLogger(logging.ParseLevel(cfg.LogLevel), logging.ParseFormat(cfg.LogFormat))

	ctx.FatalIfErrorf(ctx.Run(&cfg))
}

// FormatCmd normalizes a TEI document.
type FormatCmd struct {
	Path      string `arg:"" help:"TEI document to normalize" type:"existingfile"`
	Out       string `name:"out" short:"o" help:"Output path (default: rewrite in place; .xz compresses)" type:"path"`
	Indent    int    `name:"indent" default:"-1" help:"Starting indentation column for wrapped text"`
	NoPrune   bool   `name:"no-prune" help:"Keep elements left empty after normalization"`
	AssignIDs bool   `name:"assign-ids" help:"Assign a deterministic xml:id to classified elements lacking one"`
	Catalog   string `name:"catalog" help:"Record the run in this catalog database" type:"path"`
}

// Run executes the format command.
func (c *FormatCmd) Run(cfg *config.Config) error {
	doc, err := tei.ParseFile(c.Path)
	if err != nil {
		return err
	}

	if c.AssignIDs {
		assignIdentifiers(doc, c.Path)
	}

	opts := tei.Options{Indent: cfg.Indent, PruneEmpty: cfg.PruneEmpty}
	if c.Indent >= 0 {
		opts.Indent = c.Indent
	}
	if c.NoPrune {
		opts.PruneEmpty = false
	}
	stats := tei.Format(doc, opts)

	out := c.Out
	if out == "" {
		out = c.Path
	}
	if err := tei.WriteFile(doc, out); err != nil {
		return err
	}
	logging.Info("document normalized",
		"input", c.Path,
		"output", out,
		"divisions", stats.Divisions,
		"formatted", stats.Formatted,
		"unrecognized", stats.Unrecognized,
	)

	catalogPath := c.Catalog
	if catalogPath == "" {
		catalogPath = cfg.Catalog
	}
	if catalogPath != "" {
		cat, err := catalog.Open(catalogPath)
		if err != nil {
			return err
		}
		defer cat.Close()
		if _, err := cat.Record(catalog.Run{
			Input:     c.Path,
			Output:    out,
			Divisions: stats.Divisions,
			Formatted: stats.Formatted,
			Warnings:  stats.Unrecognized,
		}); err != nil {
			return err
		}
	}
	return nil
}

// assignIdentifiers gives every classified division child without an xml:id
// a deterministic identifier seeded by the document path and the element's
// ordinal, so repeated runs assign the same ids.
func assignIdentifiers(doc *xmlquery.Node, path string) {
	ordinal := 0
	for _, div := range tei.Divisions(doc) {
		for category, elem := range tei.Classify(div) {
			ordinal++
			if category == tei.CategoryUnrecognized {
				continue
			}
			if tei.Attr(elem, "xml:id") == "" {
				tei.SetAttr(elem, "xml:id", ident.FromSeed(fmt.Sprintf("%s#%d", path, ordinal)))
			}
		}
	}
}

// InspectCmd reports the classification of every division child.
type InspectCmd struct {
	Path string `arg:"" help:"TEI document to inspect" type:"existingfile"`
}

// Run executes the inspect command.
func (c *InspectCmd) Run(cfg *config.Config) error {
	doc, err := tei.ParseFile(c.Path)
	if err != nil {
		return err
	}

	known := color.New(color.FgGreen)
	unknown := color.New(color.FgRed)

	unrecognized := 0
	for i, div := range tei.Divisions(doc) {
		label := tei.Attr(div, "xml:id")
		if label == "" {
			label = tei.Attr(div, "n")
		}
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		fmt.Printf("div %s\n", label)
		for category, elem := range tei.Classify(div) {
			if category == tei.CategoryUnrecognized {
				unrecognized++
				fmt.Printf("  %s <%s>\n", unknown.Sprint(category), elem.Data)
				continue
			}
			fmt.Printf("  %s <%s>\n", known.Sprint(category), elem.Data)
		}
	}
	if unrecognized > 0 {
		fmt.Printf("\n%d unrecognized element(s)\n", unrecognized)
	}
	return nil
}

// RunsCmd lists recorded normalization runs.
type RunsCmd struct {
	Catalog string `name:"catalog" help:"Catalog database to read" type:"path"`
}

// Run executes the runs command.
func (c *RunsCmd) Run(cfg *config.Config) error {
	path := c.Catalog
	if path == "" {
		path = cfg.Catalog
	}
	if path == "" {
		return fmt.Errorf("no catalog configured: pass --catalog or set catalog in %s", config.DefaultPath)
	}
	cat, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer cat.Close()

	runs, err := cat.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%d\t%s\t%s -> %s\tdivs=%d formatted=%d warnings=%d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Input, r.Output, r.Divisions, r.Formatted, r.Warnings)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(cfg *config.Config) error {
	fmt.Printf("teitidy %s\n", version)
	return nil
}

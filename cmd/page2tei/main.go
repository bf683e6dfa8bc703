// Command page2tei converts Transkribus PAGE XML transcriptions into
// TEI P5 editions. It provides commands for converting documents,
// inspecting the run journal, and serving a live preview.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/PageTEI/core/convert"
	"github.com/FocuswithJustin/PageTEI/core/metadata"
	"github.com/FocuswithJustin/PageTEI/core/page"
	"github.com/FocuswithJustin/PageTEI/core/tei"
	"github.com/FocuswithJustin/PageTEI/internal/cache"
	"github.com/FocuswithJustin/PageTEI/internal/fileutil"
	"github.com/FocuswithJustin/PageTEI/internal/journal"
	"github.com/FocuswithJustin/PageTEI/internal/logging"
	"github.com/FocuswithJustin/PageTEI/internal/web"
)

const version = "0.2.0"

// CLI defines the command-line interface for page2tei.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format"`

	Convert ConvertCmd `cmd:"" help:"Convert a PAGE XML document to TEI"`
	Runs    RunsGroup  `cmd:"" help:"Conversion run journal"`
	Web     WebCmd     `cmd:"" help:"Serve a live TEI preview of a document"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// RunsGroup contains run journal operations.
type RunsGroup struct {
	List RunsListCmd `cmd:"" help:"List recorded conversion runs"`
}

// MetaFlags are the edition metadata overrides shared by convert and web.
// Empty flags fall back to the edition presets.
type MetaFlags struct {
	Kind       string `help:"Edition type (diplomatic or translation); detected from the filename when empty" enum:",diplomatic,translation" default:""`
	Title      string `help:"Edition title"`
	Author     string `help:"Author of the source text"`
	Translator string `help:"Translator name"`
	Language   string `help:"Language code of the transcription (e.g. grc, es)"`
	PageN      string `name:"page-n" help:"Folio or page number of the source object"`
	PageSide   string `name:"page-side" help:"Page side (recto or verso)"`
	Settlement string `help:"Holding settlement for the msIdentifier"`
	Idno       string `name:"idno" help:"Siglum identifier for the msIdentifier"`
}

func (f *MetaFlags) overrides() metadata.Metadata {
	return metadata.Metadata{
		Title:      f.Title,
		Author:     f.Author,
		Translator: f.Translator,
		Language:   f.Language,
		PageN:      f.PageN,
		PageSide:   f.PageSide,
		Settlement: f.Settlement,
		IdnoSiglum: f.Idno,
	}
}

// ConvertCmd converts a PAGE XML document to TEI.
type ConvertCmd struct {
	Input  string `arg:"" help:"Input PAGE XML file, optionally .xz compressed ('-' for stdin)"`
	Output string `short:"o" default:"-" help:"Output TEI file ('-' for stdout)" type:"path"`

	NonInteractive bool   `help:"Never prompt; use presets and flag overrides only"`
	Indent         string `default:"  " help:"Indentation unit for the serialized XML"`
	CacheDir       string `name:"cache-dir" help:"Conversion cache directory (disabled when empty)" type:"path"`
	Journal        string `help:"SQLite run journal path (disabled when empty)" type:"path"`

	MetaFlags
}

func (c *ConvertCmd) Run() error {
	start := time.Now()

	input, err := fileutil.ReadInput(c.Input)
	if err != nil {
		return err
	}

	collector := &metadata.Collector{
		In:  os.Stdin,
		Out: os.Stderr,
		// Prompting needs both a tty-ish stdin and a named input.
		Interactive: !c.NonInteractive && c.Input != fileutil.StdStream,
	}
	meta := collector.Collect(c.Input, metadata.EditionType(c.Kind), c.overrides())

	var store *cache.Store
	var key string
	if c.CacheDir != "" {
		store, err = cache.Open(c.CacheDir)
		if err != nil {
			return err
		}
		key = cache.Key(input, meta)
		if data, ok := store.Get(key); ok {
			logging.Info("cache hit", "input", c.Input, "key", key)
			return fileutil.WriteOutput(c.Output, data)
		}
	}

	doc, err := page.Parse(input)
	if err != nil {
		return err
	}

	result := convert.New(meta).Convert(doc)
	data := tei.Serialize(result.Root, tei.WriteOptions{Indent: c.Indent})

	if err := fileutil.WriteOutput(c.Output, data); err != nil {
		return err
	}
	if store != nil {
		store.Put(key, data)
	}

	duration := time.Since(start)
	logging.ConversionEvent(c.Input, c.Output, result.Pages, result.Lines, duration)

	if c.Journal != "" {
		if err := c.record(input, result, duration); err != nil {
			// The converted output is already written; a journal
			// failure should not fail the conversion.
			logging.Warn("journal record failed", "error", err)
		}
	}
	return nil
}

func (c *ConvertCmd) record(input []byte, result *convert.Result, duration time.Duration) error {
	j, err := journal.Open(c.Journal)
	if err != nil {
		return err
	}
	defer j.Close()

	_, err = j.Record(journal.Run{
		Input:     c.Input,
		InputHash: cache.HashInput(input),
		Output:    c.Output,
		Pages:     result.Pages,
		Lines:     result.Lines,
		Duration:  duration,
	})
	return err
}

// RunsListCmd lists recorded conversion runs, newest first.
type RunsListCmd struct {
	Journal string `arg:"" help:"SQLite run journal path" type:"existingfile"`
	Limit   int    `default:"20" help:"Maximum number of runs to show"`
}

func (c *RunsListCmd) Run() error {
	j, err := journal.Open(c.Journal)
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.List(c.Limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %s\n", run.CreatedAt.Format(time.RFC3339), run.ID)
		fmt.Printf("  Input:  %s (%s)\n", run.Input, run.InputHash[:16])
		fmt.Printf("  Output: %s\n", run.Output)
		fmt.Printf("  Pages: %d  Lines: %d  Duration: %v\n", run.Pages, run.Lines, run.Duration)
		fmt.Println()
	}
	fmt.Printf("Total: %d run(s)\n", len(runs))
	return nil
}

// WebCmd serves a live TEI preview that reconverts on file changes.
type WebCmd struct {
	Input string `arg:"" help:"Input PAGE XML file to watch" type:"existingfile"`
	Port  int    `short:"p" default:"8080" help:"Port to listen on"`

	MetaFlags
}

func (c *WebCmd) Run() error {
	collector := &metadata.Collector{In: os.Stdin, Out: os.Stderr}
	meta := collector.Collect(c.Input, metadata.EditionType(c.Kind), c.overrides())

	srv := web.NewServer(web.Config{
		Port:      c.Port,
		InputPath: c.Input,
		Convert: func() ([]byte, error) {
			input, err := fileutil.ReadInput(c.Input)
			if err != nil {
				return nil, err
			}
			doc, err := page.Parse(input)
			if err != nil {
				return nil, err
			}
			result := convert.New(meta).Convert(doc)
			return tei.Serialize(result.Root, tei.WriteOptions{Indent: "  "}), nil
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("page2tei %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("page2tei"),
		kong.Description("Convert Transkribus PAGE XML transcriptions to TEI P5 editions."),
		kong.UsageOnError(),
	)

	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

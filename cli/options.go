package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrUsage marks command-line mistakes; the caller exits with ExitUsage.
var ErrUsage = errors.New("usage error")

// Options is the parsed command line. Stages run in a fixed order:
// import, add, list, export.
type Options struct {
	ImportPath string
	AddGiven   bool
	Add        []string // title, price and optional description; may be short
	List       bool
	ExportJSON string
	ExportCSV  string
	EnvFile    string
}

// HasOperation reports whether any stage was requested. With none, the
// driver lists the (empty) collection.
func (o *Options) HasOperation() bool {
	return o.ImportPath != "" || o.wantsAdd() || o.List ||
		o.ExportJSON != "" || o.ExportCSV != ""
}

func (o *Options) wantsAdd() bool {
	return o.AddGiven || len(o.Add) > 0
}

// ParseArgs parses args (without the program name). Usage text and flag
// errors are written to stderr; -h returns flag.ErrHelp.
func ParseArgs(args []string, stderr io.Writer) (*Options, error) {
	rest, add, given, err := extractAdd(args)
	if err != nil {
		return nil, err
	}

	opts := &Options{AddGiven: given, Add: add}

	fs := flag.NewFlagSet("xlister", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ImportPath, "import-csv", "", "Import listings from a CSV (or exported JSON) file")
	fs.BoolVar(&opts.List, "list", false, "List all current listings")
	fs.StringVar(&opts.ExportJSON, "export-json", "", "Export listings to a JSON file")
	fs.StringVar(&opts.ExportCSV, "export-csv", "", "Export listings to a CSV file")
	fs.StringVar(&opts.EnvFile, "env-file", "", "Read configuration from this .env file")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: xlister [--import-csv FILE] [--add TITLE PRICE [DESCRIPTION]] [--list] [--export-json FILE] [--export-csv FILE]")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), `  -add TITLE PRICE [DESCRIPTION]
    	Add a new listing, e.g. --add "Vintage Watch" 299.99 "Beautiful vintage timepiece"`)
	}

	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %q", ErrUsage, fs.Args())
	}
	return opts, nil
}

// extractAdd pulls --add and up to three following values out of args,
// since the flag package cannot bind several values to one flag. Too few
// values is left for the add stage to report.
func extractAdd(args []string) (rest, add []string, seen bool, err error) {
	for i := 0; i < len(args); i++ {
		name, inline, hasInline := strings.Cut(args[i], "=")
		if name != "--add" && name != "-add" {
			rest = append(rest, args[i])
			continue
		}
		if seen {
			return nil, nil, false, fmt.Errorf("%w: --add given more than once", ErrUsage)
		}
		seen = true

		if hasInline {
			add = append(add, inline)
		}
		for len(add) < 3 && i+1 < len(args) && isValue(args[i+1]) {
			i++
			add = append(add, args[i])
		}
	}
	return rest, add, seen, nil
}

// isValue treats anything that is not flag-shaped as a value. Negative
// numbers count as values so "-5" reaches price validation.
func isValue(arg string) bool {
	if arg == "-" || !strings.HasPrefix(arg, "-") {
		return true
	}
	_, err := strconv.ParseFloat(arg, 64)
	return err == nil
}

package cli

import (
	"errors"
	"fmt"
	"io"

	"xlister/config"
	"xlister/models"
	"xlister/services"
	"xlister/storage"
	"xlister/utils"
)

var errAddArgs = errors.New("--add requires at least title and price")

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// App owns the collection for one invocation and sequences the stages.
type App struct {
	cfg        *config.Config
	logger     *utils.Logger
	out        io.Writer
	collection *storage.Collection
	importer   *services.Importer
	presenter  *services.Presenter
}

// NewApp wires an App writing user-facing output to out.
func NewApp(cfg *config.Config, logger *utils.Logger, out io.Writer) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		out:        out,
		collection: storage.NewCollection(),
		importer:   services.NewImporter(logger),
		presenter:  services.NewPresenter(out, cfg),
	}
}

// Collection exposes the run's listings.
func (a *App) Collection() *storage.Collection {
	return a.collection
}

// Run executes the requested stages and returns the process exit code.
// A failed stage is reported and the remaining stages still run.
func (a *App) Run(opts *Options) int {
	code := ExitOK

	if opts.ImportPath != "" {
		if err := a.importListings(opts.ImportPath); err != nil {
			a.logger.Error("Import failed: %v", err)
			code = ExitFailure
		}
	}

	if opts.wantsAdd() {
		if err := a.addListing(opts.Add); err != nil {
			a.logger.Error("Add failed: %v", err)
			code = ExitFailure
		}
	}

	if opts.List || !opts.HasOperation() {
		a.presenter.Render(a.collection)
	}

	if opts.ExportJSON != "" {
		if err := a.export(opts.ExportJSON, openJSON); err != nil {
			a.logger.Error("JSON export failed: %v", err)
			code = ExitFailure
		}
	}

	if opts.ExportCSV != "" {
		if err := a.export(opts.ExportCSV, openCSV); err != nil {
			a.logger.Error("CSV export failed: %v", err)
			code = ExitFailure
		}
	}

	return code
}

func (a *App) importListings(path string) error {
	result, err := a.importer.ImportFile(path)
	if err != nil {
		return err
	}
	a.collection.AppendAll(result.Listings)
	fmt.Fprintln(a.out, result.Summary())
	return nil
}

func (a *App) addListing(args []string) error {
	if len(args) < 2 {
		return errAddArgs
	}

	var description string
	if len(args) > 2 {
		description = args[2]
	}

	l, err := models.NewListing(args[0], args[1], description)
	if err != nil {
		return err
	}
	a.collection.Append(l)
	fmt.Fprintf(a.out, "Added listing: %s\n", l)
	return nil
}

func (a *App) export(path string, open func(string) (storage.ListingWriter, error)) error {
	path = a.cfg.ExportPath(path)

	w, err := open(path)
	if err != nil {
		return err
	}
	if err := storage.Export(w, a.collection.All()); err != nil {
		return err
	}

	a.logger.Debug("[export] %d listings, total value %.2f", a.collection.Count(), a.collection.TotalValue())
	fmt.Fprintf(a.out, "Exported %d listings to %s\n", a.collection.Count(), path)
	return nil
}

func openJSON(path string) (storage.ListingWriter, error) { return storage.NewJSONWriter(path) }

func openCSV(path string) (storage.ListingWriter, error) { return storage.NewCSVWriter(path) }

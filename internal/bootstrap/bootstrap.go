package bootstrap

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	cataloginadapter "gothere/internal/modules/catalog/adapter/in"
	catalogoutadapter "gothere/internal/modules/catalog/adapter/out"
	catalogservice "gothere/internal/modules/catalog/service"
	catalogusecase "gothere/internal/modules/catalog/usecase"
	progressinadapter "gothere/internal/modules/progress/adapter/in"
	progressoutadapter "gothere/internal/modules/progress/adapter/out"
	progressout "gothere/internal/modules/progress/port/out"
	progressservice "gothere/internal/modules/progress/service"
	progressusecase "gothere/internal/modules/progress/usecase"
	"gothere/internal/platform/clipboard"
	"gothere/internal/platform/clock"
	"gothere/internal/platform/config"
	"gothere/internal/platform/id"
	"gothere/internal/platform/logger"
	uiapp "gothere/internal/ui/app"
)

type App struct {
	Config      config.Config
	Log         *logger.Logger
	CatalogCLI  cataloginadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler

	closers []io.Closer
}

func New(cfg config.Config) (*App, error) {
	log, err := logger.New(cfg.LogMode, cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	app := &App{Config: cfg, Log: log}
	store := app.openStore()
	app.wire(store)
	return app, nil
}

// NewWithStore wires the app over a caller-provided blob store.
func NewWithStore(cfg config.Config, log *logger.Logger, store progressout.BlobStore) *App {
	if log == nil {
		log = logger.Nop()
	}
	app := &App{Config: cfg, Log: log}
	app.wire(store)
	return app
}

// openStore picks the configured backend. A backend that cannot be opened
// leaves the session on an in-memory store rather than failing.
func (a *App) openStore() progressout.BlobStore {
	switch a.Config.Store {
	case config.StoreSQLite:
		store, err := progressoutadapter.NewSQLiteBlobStore(a.Config.DBPath)
		if err != nil {
			a.Log.Warn("sqlite store unavailable, progress will not persist", "path", a.Config.DBPath, "error", err)
			return progressoutadapter.NewMemoryBlobStore()
		}
		if c, ok := store.(io.Closer); ok {
			a.closers = append(a.closers, c)
		}
		return store
	default:
		return progressoutadapter.NewFileBlobStore(a.Config.StateDir)
	}
}

func (a *App) wire(store progressout.BlobStore) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	catalogSvc := catalogservice.NewCatalogService(catalogoutadapter.NewYAMLCatalogSource(a.Config.CatalogPath), a.Log)
	catalogUC := catalogusecase.NewInteractor(catalogSvc)

	progressSvc := progressservice.NewProgressService(store, progressoutadapter.NewMarkdownSavedNoteWriter(), a.Log)
	progressUC := progressusecase.NewInteractor(progressSvc, catalogUC, clk, ids, a.Log)

	a.CatalogCLI = cataloginadapter.NewCLIHandler(catalogUC)
	a.ProgressCLI = progressinadapter.NewCLIHandler(progressUC)
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.Log.Sync()
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.CatalogCLI, app.ProgressCLI, clipboard.System{})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

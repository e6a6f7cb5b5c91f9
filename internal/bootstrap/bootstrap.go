package bootstrap

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	historyinadapter "gocycling/internal/modules/history/adapter/in"
	historyoutadapter "gocycling/internal/modules/history/adapter/out"
	historyservice "gocycling/internal/modules/history/service"
	historyusecase "gocycling/internal/modules/history/usecase"
	prefsinadapter "gocycling/internal/modules/preferences/adapter/in"
	prefsoutadapter "gocycling/internal/modules/preferences/adapter/out"
	prefsservice "gocycling/internal/modules/preferences/service"
	prefsusecase "gocycling/internal/modules/preferences/usecase"
	rideinadapter "gocycling/internal/modules/ride/adapter/in"
	rideoutadapter "gocycling/internal/modules/ride/adapter/out"
	rideout "gocycling/internal/modules/ride/port/out"
	rideservice "gocycling/internal/modules/ride/service"
	rideusecase "gocycling/internal/modules/ride/usecase"
	"gocycling/internal/platform/clock"
	"gocycling/internal/platform/config"
	apperrors "gocycling/internal/platform/errors"
	"gocycling/internal/platform/id"
	"gocycling/internal/platform/logging"
	uiapp "gocycling/internal/ui/app"
)

type App struct {
	RideCLI    rideinadapter.CLIHandler
	HistoryCLI historyinadapter.CLIHandler
	PrefsCLI   prefsinadapter.CLIHandler
	Logger     hclog.Logger
	Config     config.Config

	closers []io.Closer
}

// New wires every module from cfg. Logs go to logOut at cfg.LogLevel.
func New(cfg config.Config, logOut io.Writer) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	logger := logging.New(cfg.LogLevel, logOut)
	app := &App{Logger: logger, Config: cfg}

	prefsUC := prefsusecase.NewInteractor(prefsservice.NewPreferencesService(prefsoutadapter.NewYAMLStore(cfg.PreferencesPath)))

	rideStore, err := historyoutadapter.NewSQLiteRideStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new ride store: %w", err)
	}
	app.closers = append(app.closers, rideStore)
	historyUC := historyusecase.NewInteractor(
		historyservice.NewHistoryService(clk, rideStore, historyoutadapter.NewVaultRideJournal(cfg.JournalDir), logger.Named("history")),
		prefsUC,
	)

	stateStore, err := app.stateStore(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	rideUC := rideusecase.NewInteractor(
		rideservice.NewTimerService(clk, ids, logger.Named("ride")),
		stateStore,
		newSampler(cfg, logger.Named("sampler")),
		rideoutadapter.NewHistoryRecorder(historyUC),
	)

	app.RideCLI = rideinadapter.NewCLIHandler(rideUC)
	app.HistoryCLI = historyinadapter.NewCLIHandler(historyUC)
	app.PrefsCLI = prefsinadapter.NewCLIHandler(prefsUC)
	return app, nil
}

func (a *App) stateStore(cfg config.Config) (rideout.StateStore, error) {
	switch cfg.StateBackend {
	case config.StateBackendRedis:
		client := rideoutadapter.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
		a.closers = append(a.closers, client)
		return rideoutadapter.NewRedisStateStore(client, cfg.RedisKey), nil
	case config.StateBackendFile, "":
		return rideoutadapter.NewFileStateStore(cfg.StatePath), nil
	}
	return nil, fmt.Errorf("state backend %q: %w", cfg.StateBackend, apperrors.ErrUnsupportedBackend)
}

func newSampler(cfg config.Config, logger hclog.Logger) rideout.DistanceSampler {
	if cfg.Sampler == config.SamplerPlugin {
		return rideoutadapter.NewPluginSampler(cfg.SamplerBinary, cfg.SamplerSHA256, logger)
	}
	return rideoutadapter.NewTrackSampler(cfg.TrackPath)
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.RideCLI, app.HistoryCLI, app.PrefsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

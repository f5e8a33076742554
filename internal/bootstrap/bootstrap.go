package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	accountinadapter "neurocalm/internal/modules/account/adapter/in"
	accountoutadapter "neurocalm/internal/modules/account/adapter/out"
	accountin "neurocalm/internal/modules/account/port/in"
	accountout "neurocalm/internal/modules/account/port/out"
	accountservice "neurocalm/internal/modules/account/service"
	accountusecase "neurocalm/internal/modules/account/usecase"
	analyticsinadapter "neurocalm/internal/modules/analytics/adapter/in"
	analyticsoutadapter "neurocalm/internal/modules/analytics/adapter/out"
	analyticsin "neurocalm/internal/modules/analytics/port/in"
	analyticsservice "neurocalm/internal/modules/analytics/service"
	analyticsusecase "neurocalm/internal/modules/analytics/usecase"
	chatinadapter "neurocalm/internal/modules/chat/adapter/in"
	chatservice "neurocalm/internal/modules/chat/service"
	chatusecase "neurocalm/internal/modules/chat/usecase"
	"neurocalm/internal/platform/clock"
	"neurocalm/internal/platform/config"
	apperrors "neurocalm/internal/platform/errors"
	"neurocalm/internal/platform/id"
	"neurocalm/internal/platform/latency"
	"neurocalm/internal/platform/logging"
	"neurocalm/internal/platform/notify"
	"neurocalm/internal/platform/tx"
	uiapp "neurocalm/internal/ui/app"
)

type App struct {
	AccountCLI   accountinadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler
	ChatCLI      chatinadapter.CLIHandler

	// Notifications collects every notification raised by the modules, for
	// surfaces that cannot print them as they happen.
	Notifications *notify.Recorder
	Logger        *zap.Logger

	account   accountin.Usecase
	analytics analyticsin.Usecase
	closers   []func() error
}

// Options tunes how the app reports to the user.
type Options struct {
	// Out receives notifications as they are raised. Leave nil when a
	// full-screen UI owns the terminal.
	Out io.Writer
}

func New(cfg config.Config, opts Options) (*App, error) {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	app := &App{Notifications: &notify.Recorder{}, Logger: logger}
	app.closers = append(app.closers, func() error { _ = logger.Sync(); return nil })

	clk := clock.SystemClock{}
	delay := latency.New(cfg.Gateway.DelayMinMs, cfg.Gateway.DelayMaxMs)

	store, txm, err := app.openStore(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	notifiers := notify.Multi{app.Notifications, notify.NewLogger(logger)}
	if opts.Out != nil {
		notifiers = append(notifiers, notify.NewWriter(opts.Out))
	}

	accountUC := accountusecase.NewInteractor(
		accountservice.NewAccountService(clk, id.UUID{}, id.NewTimeBased("session", clk), accountoutadapter.NewBcryptHasher(bcrypt.DefaultCost)),
		accountservice.NewRecordService(store),
		accountoutadapter.NewSimulatedGateway(delay, cfg.Gateway.Fail, logger),
		notifiers,
		txm,
		id.UUID{},
		logger,
		accountusecase.Options{
			VerifyPassword: cfg.VerifyPassword,
			ResetLinkBase:  cfg.ResetLinkBase,
		},
	)

	accountAdapter := analyticsoutadapter.NewAccountAdapter(accountUC)
	analyticsUC := analyticsusecase.NewInteractor(analyticsservice.NewAnalyticsService(
		clk,
		accountAdapter,
		accountAdapter,
		analyticsoutadapter.NewMarkdownExporter(clk.Now, logger),
	))

	chatUC := chatusecase.NewInteractor(
		chatservice.NewChatService(clk, id.NewTimeBased("msg", clk), delay),
		logger,
	)

	// A missing or stale session is the normal signed-out state.
	if _, err := accountUC.Restore(context.Background()); err != nil && !errors.Is(err, apperrors.ErrNotAuthenticated) {
		_ = app.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	app.account = accountUC
	app.analytics = analyticsUC
	app.AccountCLI = accountinadapter.NewCLIHandler(accountUC)
	app.AnalyticsCLI = analyticsinadapter.NewCLIHandler(analyticsUC)
	app.ChatCLI = chatinadapter.NewCLIHandler(chatUC)
	return app, nil
}

func (a *App) openStore(cfg config.Config) (accountout.KeyValueStore, tx.Manager, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := accountoutadapter.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		store := accountoutadapter.NewSQLiteKeyValueStore(db)
		a.closers = append(a.closers, store.Close)
		if err := store.InitTable(context.Background()); err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return accountoutadapter.NewFileKeyValueStore(cfg.RecordsDir()), &tx.SerialManager{}, nil
	}
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// RunTUI starts the full-screen interface for the signed-in account.
func RunTUI(app *App) error {
	if _, err := app.account.Current(context.Background()); err != nil {
		return fmt.Errorf("sign in before starting the TUI: %w", err)
	}
	model := uiapp.NewModel(app.account, app.analytics, app.ChatCLI, app.Notifications)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

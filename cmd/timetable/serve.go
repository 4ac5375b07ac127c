package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/timetable/internal/app"
	"github.com/Freeeeeet/timetable/internal/controller"
	"github.com/Freeeeeet/timetable/internal/controller/httpapi"
	"github.com/Freeeeeet/timetable/internal/metrics"
	"github.com/Freeeeeet/timetable/internal/service"
	"github.com/Freeeeeet/timetable/migrations"
	"github.com/go-telegram/bot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (c *cli) serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (and the Telegram bot when a token is set)",
		Example: `  timetable serve
  STORAGE=memory timetable serve
  timetable serve --migrate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.setup(); err != nil {
				return err
			}
			defer c.sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return c.serve(ctx, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before start (postgres only)")
	return cmd
}

func (c *cli) serve(ctx context.Context, migrate bool) error {
	c.logger.Info("Starting timetable service",
		zap.String("environment", c.cfg.Environment),
		zap.String("storage", c.cfg.Storage),
		zap.String("version", version))

	st, err := c.openStores(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if migrate && st.pool != nil {
		if err := c.applyMigrations(ctx, st); err != nil {
			return err
		}
	}

	m := metrics.New()
	opts := []service.ScheduleOption{service.WithDecisionRecorder(m)}

	var botInstance *bot.Bot
	if c.cfg.BotEnabled() {
		botInstance, err = bot.New(c.cfg.TelegramToken)
		if err != nil {
			return fmt.Errorf("create bot: %w", err)
		}
		opts = append(opts, service.WithNotifier(controller.NewTelegramNotifier(botInstance, c.logger)))
	} else {
		c.logger.Info("TELEGRAM_TOKEN is empty, bot and notifications are disabled")
	}

	svc := c.buildServices(st, opts...)

	scheduler := app.NewScheduler(svc.analytics, c.cfg.CacheSweepInterval, c.logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	api := httpapi.NewServer(svc.schedule, svc.teachers, svc.subjects, svc.analytics, c.logger,
		httpapi.WithMetrics(m, m.Handler()))
	httpServer := &http.Server{
		Addr:    c.cfg.HTTPAddr,
		Handler: api.Router(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.logger.Info("HTTP server listening", zap.String("addr", c.cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		c.logger.Info("Shutting down HTTP server", zap.Duration("timeout", c.cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), c.cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	if botInstance != nil {
		botController := controller.NewBotController(botInstance, svc.schedule, c.logger)
		if err := botController.RegisterHandlers(ctx); err != nil {
			// меню команд не критично для работы бота
			c.logger.Warn("Bot commands were not registered", zap.Error(err))
		}
		g.Go(func() error {
			return botController.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	c.logger.Info("Timetable service stopped")
	return nil
}

func (c *cli) applyMigrations(ctx context.Context, st *stores) error {
	migrator, err := app.NewMigrator(st.pool, migrations.FS, c.logger)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	return migrator.Up(ctx)
}

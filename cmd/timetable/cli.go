package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable/internal/app"
	"github.com/Freeeeeet/timetable/internal/cache"
	"github.com/Freeeeeet/timetable/internal/config"
	"github.com/Freeeeeet/timetable/internal/repository"
	"github.com/Freeeeeet/timetable/internal/repository/memory"
	"github.com/Freeeeeet/timetable/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Заполняется через -ldflags при сборке
var (
	version = "dev"
	commit  = "none"
)

type cli struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newCLI() *cli {
	return &cli{}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "timetable",
		Short:         "School timetable service",
		Long:          "Weekly school timetable with a teacher schedule conflict validator.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		c.serveCmd(),
		c.migrateCmd(),
		c.renderCmd(),
		c.versionCmd(),
	)
	return root
}

// setup загружает конфиг и логгер для команд, которым они нужны
func (c *cli) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	c.cfg = cfg
	c.logger = logger
	return nil
}

func (c *cli) sync() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// stores набор хранилищ, выбранный по STORAGE
type stores struct {
	teachers service.TeacherStore
	subjects service.SubjectStore
	slots    service.SlotStore
	pool     *pgxpool.Pool
}

func (s *stores) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (c *cli) openStores(ctx context.Context) (*stores, error) {
	if c.cfg.Storage == config.StorageMemory {
		c.logger.Warn("Using in-memory storage, data will be lost on exit")
		db := memory.Open()
		return &stores{teachers: db.Teachers(), subjects: db.Subjects(), slots: db.Slots()}, nil
	}

	pool, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	return &stores{
		teachers: repository.NewTeacherRepository(pool),
		subjects: repository.NewSubjectRepository(pool),
		slots:    repository.NewSlotRepository(pool),
		pool:     pool,
	}, nil
}

func (c *cli) connect(ctx context.Context) (*pgxpool.Pool, error) {
	if c.cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}

	pool, err := pgxpool.New(ctx, c.cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	c.logger.Info("Connected to database")
	return pool, nil
}

// services собирает сервисы поверх хранилищ
type services struct {
	schedule  *service.ScheduleService
	teachers  *service.TeacherService
	subjects  *service.SubjectService
	analytics *service.AnalyticsService
}

func (c *cli) buildServices(st *stores, opts ...service.ScheduleOption) *services {
	analyticsCache := cache.New[string, any](c.cfg.AnalyticsCacheTTL, c.cfg.AnalyticsCacheSize)
	analytics := service.NewAnalyticsService(st.slots, st.teachers, st.subjects, analyticsCache, c.logger)

	opts = append(opts, service.WithCacheInvalidator(analytics))
	return &services{
		schedule:  service.NewScheduleService(st.slots, st.teachers, st.subjects, c.logger, opts...),
		teachers:  service.NewTeacherService(st.teachers, analytics, c.logger),
		subjects:  service.NewSubjectService(st.subjects, st.slots, analytics, c.logger),
		analytics: analytics,
	}
}

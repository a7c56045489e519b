package app

import (
	"context"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/database/seeder"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/routes"
	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/queue"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"

	"go.uber.org/zap"
)

// Container wires storage, engine, queue and delivery together. With no
// database configured everything runs on the in-memory repositories,
// which is the mode the test suites and local development use.
type Container struct {
	Config config.Config
	Log    *zap.Logger

	DB    database.DB
	Cache *cache.Redis

	Matches    repository.MatchRepository
	Candidates repository.CandidateStore
	Jobs       repository.JobStore

	Engine   *matching.Engine
	Queue    *queue.Service
	Hub      *ws.Hub
	Registry *routes.Registry
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Container{Config: cfg, Log: log}
	c.Cache = cache.NewRedis(cfg.Cache, log)

	if err := c.initStorage(cfg); err != nil {
		return nil, err
	}

	policy := matching.NewPolicy(toWeights(cfg.Matching.Weights))
	c.Engine = matching.NewEngine(policy)

	matchingUC := usecase.NewMatchingUsecase(
		c.Candidates, c.Jobs, c.Matches, c.Engine, cfg.Matching.SingleTimeout, log)

	c.Hub = ws.NewHub(log)
	notifier := ws.NewNotifier(c.Hub, log)

	c.Queue = queue.NewService(queue.Config{
		Workers:          cfg.Queue.Workers,
		Buffer:           cfg.Queue.Buffer,
		MaxBulkPerTenant: cfg.Queue.MaxBulkPerTenant,
		ScorerTimeout:    cfg.Matching.ScorerTimeout,
		Retention:        cfg.Queue.Retention,
	}, matchingUC, c.Candidates, notifier, log)

	bulkUC := usecase.NewBulkMatchingUsecase(c.Queue)
	feedbackUC := usecase.NewFeedbackUsecase(c.Matches, c.Cache, log)
	statsUC := usecase.NewStatsUsecase(
		c.Matches, c.Cache, cfg.Matching.ScoreThreshold, cfg.Matching.StatsTTL, log)

	var dbPinger handler.Pinger
	if c.DB != nil {
		dbPinger = c.DB
	}
	c.Registry = routes.NewRegistry(
		handler.NewHealthHandler(dbPinger, c.Cache),
		handler.NewMatchHandler(matchingUC, bulkUC),
		handler.NewBulkMatchHandler(bulkUC),
		handler.NewFeedbackHandler(feedbackUC),
		handler.NewStatsHandler(statsUC),
		ws.NewHandler(c.Hub, log),
	)

	return c, nil
}

func (c *Container) initStorage(cfg config.Config) error {
	if !cfg.Database.Enabled() {
		c.Log.Info("no database configured, using in-memory storage")
		candidates := repository.NewMemoryCandidateStore()
		jobs := repository.NewMemoryJobStore()
		if cfg.App.Environment == "development" {
			seeder.SeedMemory(candidates, jobs)
		}
		c.Candidates = candidates
		c.Jobs = jobs
		c.Matches = repository.NewMemoryMatchRepository()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return err
	}
	if cfg.App.Environment == "development" {
		if err := seeder.SeedPostgres(ctx, db); err != nil {
			_ = db.Close()
			return err
		}
	}

	c.DB = db
	c.Candidates = repository.NewCachedCandidateStore(
		repository.NewPostgresCandidateStore(db), c.Cache, cfg.Matching.RecordTTL)
	c.Jobs = repository.NewCachedJobStore(
		repository.NewPostgresJobStore(db), c.Cache, cfg.Matching.RecordTTL)
	c.Matches = repository.NewPostgresMatchRepository(db)
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

func toWeights(raw map[string]float64) matching.Weights {
	if len(raw) == 0 {
		return nil
	}
	w := make(matching.Weights, len(raw))
	for k, v := range raw {
		w[match.FactorCategory(k)] = v
	}
	return w
}

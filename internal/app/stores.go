package app

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/futdraft/internal/config"
	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/domain/leaderboard"
	"github.com/riskibarqy/futdraft/internal/domain/player"
	"github.com/riskibarqy/futdraft/internal/domain/trivia"
	"github.com/riskibarqy/futdraft/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/futdraft/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/futdraft/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/futdraft/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/futdraft/internal/infrastructure/repository/resilient"
	"github.com/riskibarqy/futdraft/internal/platform/id"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
	"github.com/riskibarqy/futdraft/internal/platform/resilience"
)

type stores struct {
	drafts      draft.Repository
	players     player.Repository
	trivia      trivia.Repository
	leaderboard leaderboard.Repository

	closers []func() error
}

func (s *stores) close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		err = errors.CombineErrors(err, s.closers[i]())
	}
	return err
}

func openStores(ctx context.Context, cfg config.Config, logger *logging.Logger, clock clockwork.Clock) (*stores, error) {
	ids := id.NewUUIDGenerator()
	out := &stores{}

	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		out.closers = append(out.closers, db.Close)
		if cfg.SeedData {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = out.close()
				return nil, errors.Wrap(err, "bootstrap seed")
			}
		}
		out.drafts = postgres.NewDraftRepository(db)
		out.players = postgres.NewPlayerRepository(db)
		out.trivia = postgres.NewTriviaRepository(db)
		out.leaderboard = postgres.NewLeaderboardRepository(db)
		logger.Info("using postgres store", "db", postgresDSN(cfg.DBURL).database())
	default:
		var players []player.Player
		var questions []trivia.Question
		if cfg.SeedData {
			players = memory.SeedPlayers()
			questions = memory.SeedQuestions()
		}
		out.drafts = memory.NewDraftRepository(ids, clock)
		out.players = memory.NewPlayerRepository(players)
		out.trivia = memory.NewTriviaRepository(questions)
		out.leaderboard = memory.NewLeaderboardRepository(ids)
		logger.Info("using memory store", "seeded", cfg.SeedData)
	}

	out.players = cache.NewPlayerRepository(out.players, cfg.PlayerCacheTTL, clock)
	out.trivia = cache.NewTriviaRepository(out.trivia, cfg.PlayerCacheTTL, clock)

	if cfg.RedisEnabled {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			_ = out.close()
			return nil, errors.Wrapf(err, "ping redis addr=%s", cfg.RedisAddr)
		}
		out.closers = append(out.closers, client.Close)

		index := redisrepo.NewLeaderboardRepository(client, cfg.LeaderboardKey, ids, clock)
		if cfg.StoreBackend == config.StorePostgres {
			mirrored := redisrepo.NewMirroredLeaderboard(out.leaderboard, index, logger)
			warmed, err := mirrored.Warm(ctx)
			if err != nil {
				logger.Warn("leaderboard index warmup failed", "error", err)
			} else {
				logger.Info("leaderboard index warmed", "entries", warmed)
			}
			out.leaderboard = mirrored
		} else {
			out.leaderboard = index
		}
	}

	if cfg.StoreCircuitEnabled {
		breakerCfg := resilience.Config{
			FailureThreshold: cfg.StoreCircuitFailureCount,
			OpenTimeout:      cfg.StoreCircuitOpenTimeout,
			HalfOpenProbes:   cfg.StoreCircuitHalfOpenMaxReq,
		}
		out.drafts = resilient.NewDraftRepository(out.drafts, resilience.NewBreaker(breakerCfg, clock))
		out.leaderboard = resilient.NewLeaderboardRepository(out.leaderboard, resilience.NewBreaker(breakerCfg, clock))
	}

	return out, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open(
		"postgres",
		postgresDSN(cfg.DBURL).textResults(cfg.DBDisablePreparedBinaryResult),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(postgresDSN(cfg.DBURL).database()),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

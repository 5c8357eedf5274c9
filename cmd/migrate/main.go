package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/2beens/gymtrack/internal/config"
	"github.com/2beens/gymtrack/internal/db"
	"github.com/2beens/gymtrack/internal/gymtrack/migration"
	"github.com/2beens/gymtrack/internal/gymtrack/repo"
	"github.com/2beens/gymtrack/internal/persistence"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// migrate upgrades the stored training snapshot to the current format once,
// without starting the service.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML (or YAML) config file")
	dryRun := flag.Bool("dry-run", false, "only report what would be migrated")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, *dryRun); err != nil {
		log.Errorf("migrate: %s", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dryRun bool) error {
	params := persistence.OpenParams{
		Backend:      cfg.PersistenceBackend,
		FileRootPath: cfg.FileRootPath,
		SQLitePath:   cfg.SQLitePath,
		S3: persistence.S3Params{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			AccessKeyID:     os.Getenv("GYMTRACK_S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("GYMTRACK_S3_SECRET_ACCESS_KEY"),
		},
	}

	switch cfg.PersistenceBackend {
	case persistence.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: os.Getenv("GYMTRACK_REDIS_PASS"),
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Errorf("close redis client: %s", err)
			}
		}()
		params.RedisClient = rdb
	case persistence.BackendPostgres:
		pool, err := openPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		params.PostgresPool = pool
	}

	backend, err := persistence.Open(ctx, params)
	if err != nil {
		return fmt.Errorf("open persistence backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Errorf("close persistence backend: %s", err)
		}
	}()

	migrator := migration.New(cfg.Migration)

	if dryRun {
		raw, err := backend.Get(ctx, cfg.SnapshotKey)
		if errors.Is(err, persistence.ErrKeyNotFound) {
			fmt.Printf("nothing stored under [%s]\n", cfg.SnapshotKey)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		_, report, err := migrator.Migrate(raw)
		if err != nil {
			return fmt.Errorf("migrate snapshot: %w", err)
		}
		printReport(report, true)
		return nil
	}

	snapshotRepo := repo.New(backend, cfg.SnapshotKey, migrator)
	snapshot, report, err := snapshotRepo.Load(ctx)
	if err != nil {
		return err
	}
	printReport(report, false)
	fmt.Printf("snapshot [%s] holds %d trainings\n", snapshotRepo.Key(), len(snapshot.Trainings))
	return nil
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     os.Getenv("GYMTRACK_POSTGRES_USER"),
		DBPassword: os.Getenv("GYMTRACK_POSTGRES_PASS"),
		MaxConns:   2,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}
	return pool, nil
}

func printReport(report migration.Report, dryRun bool) {
	if !report.Changed() {
		fmt.Println("snapshot already up to date")
		return
	}
	verb := "migrated"
	if dryRun {
		verb = "would migrate"
	}
	fmt.Printf("%s %d trainings, %d exercises, %d sets\n", verb, report.Trainings, report.Exercises, report.Sets)
}

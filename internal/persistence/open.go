package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendS3       = "s3"
)

type OpenParams struct {
	Backend string

	FileRootPath string
	SQLitePath   string
	S3           S3Params

	// shared clients, created and closed by the caller
	RedisClient  *redis.Client
	PostgresPool *pgxpool.Pool
}

// Open creates the backend selected by params.Backend.
func Open(ctx context.Context, params OpenParams) (Backend, error) {
	log.Debugf("opening [%s] persistence backend", params.Backend)

	switch params.Backend {
	case BackendMemory, "":
		log.Warnln("using in-memory persistence, trainings will be lost on restart")
		return NewMemory(), nil
	case BackendFile:
		f, err := NewFile(params.FileRootPath)
		if err != nil {
			return nil, err
		}
		return f, nil
	case BackendRedis:
		if params.RedisClient == nil {
			return nil, errors.New("redis backend selected, but no redis client given")
		}
		return NewRedis(params.RedisClient), nil
	case BackendPostgres:
		if params.PostgresPool == nil {
			return nil, errors.New("postgres backend selected, but no db pool given")
		}
		pg, err := NewPostgres(ctx, params.PostgresPool)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case BackendSQLite:
		db, err := OpenSQLite(ctx, params.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendS3:
		s3, err := NewS3FromParams(ctx, params.S3)
		if err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return nil, fmt.Errorf("unknown persistence backend [%s]", params.Backend)
	}
}

package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/gymtrack/internal/config"
	"github.com/2beens/gymtrack/internal/db"
	"github.com/2beens/gymtrack/internal/gymtrack/handler"
	"github.com/2beens/gymtrack/internal/gymtrack/migration"
	"github.com/2beens/gymtrack/internal/gymtrack/repo"
	"github.com/2beens/gymtrack/internal/gymtrack/stats"
	"github.com/2beens/gymtrack/internal/gymtrack/store"
	"github.com/2beens/gymtrack/internal/middleware"
	"github.com/2beens/gymtrack/internal/persistence"
	"github.com/2beens/gymtrack/internal/telemetry/metrics"
	"github.com/2beens/gymtrack/internal/telemetry/tracing"
	"github.com/2beens/gymtrack/pkg"
)

const serviceName = "gymtrack"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	backend     persistence.Backend
	store       *store.Store

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresUser            string
	PostgresPassword        string
	S3AccessKeyID           string
	S3SecretAccessKey       string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	var collectors []prometheus.Collector

	var dbPool *pgxpool.Pool
	if cfg.PersistenceBackend == persistence.BackendPostgres {
		var err error
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         params.PostgresUser,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}

		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	promRegistry := metrics.SetupPrometheus(collectors...)
	metricsManager := metrics.NewManager(serviceName, "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	// redis serves the rate limiter, and the snapshot when it is the backend
	var rdb *redis.Client
	if cfg.RedisHost != "" && cfg.RedisPort != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	// releaseClients closes what was opened so far, for the error paths below
	releaseClients := func() {
		if rdb != nil {
			if err := rdb.Close(); err != nil {
				log.Errorf("failed to close redis client conn: %s", err)
			}
		}
		if dbPool != nil {
			dbPool.Close()
		}
	}

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName, rdb)
	if err != nil {
		releaseClients()
		return nil, err
	}

	backend, err := persistence.Open(ctx, persistence.OpenParams{
		Backend:      cfg.PersistenceBackend,
		FileRootPath: cfg.FileRootPath,
		SQLitePath:   cfg.SQLitePath,
		S3: persistence.S3Params{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			AccessKeyID:     params.S3AccessKeyID,
			SecretAccessKey: params.S3SecretAccessKey,
		},
		RedisClient:  rdb,
		PostgresPool: dbPool,
	})
	if err != nil {
		otelShutdown()
		releaseClients()
		return nil, fmt.Errorf("open persistence backend: %w", err)
	}

	snapshotRepo := repo.New(backend, cfg.SnapshotKey, migration.New(cfg.Migration))
	snapshot, report, err := snapshotRepo.Load(ctx)
	if err != nil {
		otelShutdown()
		releaseClients()
		return nil, fmt.Errorf("load trainings: %w", err)
	}
	metricsManager.CounterMigratedTrainings.Add(float64(report.Trainings))
	log.Infof("loaded %d trainings from [%s] backend, key [%s]", len(snapshot.Trainings), cfg.PersistenceBackend, snapshotRepo.Key())

	trainingStore := store.New(
		snapshot,
		snapshotRepo,
		store.WithPersistPolicy(cfg.PersistPolicy),
		store.WithMetrics(metricsManager),
		store.WithStatsEngine(stats.NewEngine(cfg.StatsCacheSizeMB*1024*1024)),
	)

	return &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
		dbPool:      dbPool,
		redisClient: rdb,
		backend:     backend,
		store:       trainingStore,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware(serviceName + "-router"))

	var limitMutations func(http.Handler) http.Handler
	if s.redisClient != nil {
		limitMutations = middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			serviceName,
			s.config.RateLimitAllowedPerMin,
			s.metricsManager,
		)
	} else {
		log.Warnln("no redis client, mutating routes are not rate limited")
	}

	handler.SetupRoutes(r, handler.New(s.store), limitMutations)

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")
	r.HandleFunc("/version", s.handleVersion).Methods("GET").Name("version")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteResponse(w, pkg.ContentType.Text, "I'm OK", http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteResponse(w, pkg.ContentType.Text, s.versionInfo, http.StatusOK)
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if s.config.PersistPolicy == store.PersistManual {
		go s.flushLoop(ctx, time.Duration(s.config.FlushIntervalSec)*time.Second)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// flushLoop writes pending mutations every interval, until ctx is done.
func (s *Server) flushLoop(ctx context.Context, interval time.Duration) {
	log.Debugf("flushing trainings every %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugln("flush loop stopped")
			return
		case <-ticker.C:
			s.flushIfDirty(ctx)
		}
	}
}

func (s *Server) flushIfDirty(ctx context.Context) {
	if !s.store.Dirty() {
		return
	}
	if err := s.store.Flush(ctx); err != nil {
		log.Errorf("flush trainings: %s", err)
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	// no more requests at this point, write what the flush loop did not
	s.flushIfDirty(ctx)

	if err := s.backend.Close(); err != nil {
		log.Errorf("failed to close persistence backend: %s", err)
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

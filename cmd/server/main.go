package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"pump-radar/internal/bot"
	"pump-radar/internal/cache"
	"pump-radar/internal/config"
	"pump-radar/internal/db"
	"pump-radar/internal/domain"
	"pump-radar/internal/handler"
	"pump-radar/internal/job"
	"pump-radar/internal/market"
	"pump-radar/internal/mention"
	"pump-radar/internal/metrics"
	"pump-radar/internal/provider"
	"pump-radar/internal/repository"
	"pump-radar/internal/service"
	sig "pump-radar/internal/signal"
	"pump-radar/pkg/logger"
	"pump-radar/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "pump-radar/docs"
)

const dbMaxConns = 10

var (
	loadEnvFunc         = godotenv.Load
	loadConfigFunc      = config.Load
	initLoggerFunc      = logger.Init
	initTracerFunc      = tracing.InitTracer
	connectPostgresFunc = func(ctx context.Context, url string) (*pgxpool.Pool, error) {
		return db.Connect(ctx, url, dbMaxConns)
	}
	connectRedisFunc = cache.Connect
	newListersFunc   = func(cfg *config.Config, tracer trace.Tracer) []service.PairLister {
		return []service.PairLister{
			provider.NewBittrexProvider(tracer, cfg.BaseCurrency),
			provider.NewYobitProvider(tracer, cfg.BaseCurrency),
			provider.NewBinanceProvider(tracer, cfg.BaseCurrency),
		}
	}
	startPollerFunc        = func(p *job.MarketPoller, ctx context.Context) { go p.Start(ctx) }
	startListenerFunc      = func(l *bot.Listener, token string) (func(), error) { return l.Start(token) }
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Pump Radar API
// @version         1.0
// @description     Detects pump announcements in Telegram groups and maps coin mentions to listed tickers.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
func main() {
	if err := loadEnvFunc(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := loadConfigFunc()
	if cfg.LogFile != "" {
		defer logger.TeeFile(cfg.LogFile).Close()
	}
	initLoggerFunc(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	pool, err := connectPostgresFunc(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if pool != nil {
		defer pool.Close()
	}

	rdb, err := connectRedisFunc(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	dictRepo := repository.NewDictionaryRepository(pool, tracer)
	signalRepo := repository.NewSignalRepository(pool, tracer)
	groupRepo := repository.NewGroupRepository(pool, tracer)

	book := market.NewBook()
	tickerService := service.NewTickerService(tracer, book, redisClient(rdb), newListersFunc(cfg, tracer)...)

	builder := mention.NewBuilder(
		provider.NewWordsAPIProvider(tracer, cfg.WordsAPIKey, cfg.WordsAPIHost),
		mention.BuilderConfig{MaxCoins: cfg.DictionaryMaxCoins, ClampWeights: cfg.TrustWeightClamp},
	)
	scorer := mention.NewScorer(mention.ParseWeightMode(cfg.MentionWeightMode))
	dictionaryService := service.NewDictionaryService(tracer, tickerService, builder, scorer, dictRepo, book, cfg.DictionaryExchange)

	pumps := service.NewExpectedPumpTracker(tracer, redisClient(rdb), time.Duration(cfg.ExpectedPumpEpsilonSecs)*time.Second)
	extractor := sig.NewExtractor(sig.ExtractorConfig{
		Hosts:        domain.DefaultExchangeHosts,
		BaseCurrency: cfg.BaseCurrency,
		IgnoreWords:  cfg.IgnoreWords,
	})
	log.Info().
		Str("weight_mode", string(scorer.Mode())).
		Bool("clamp_weights", cfg.TrustWeightClamp).
		Dur("pump_epsilon", pumps.Epsilon()).
		Str("dictionary_exchange", cfg.DictionaryExchange).
		Msg("signal pipeline configured")
	signalService := service.NewSignalService(tracer, extractor, tickerService, groupRepo, signalRepo, pumps, dictionaryService)

	m := metrics.New()

	// Background refresh, stopped by ctx cancel
	poller := job.NewMarketPoller(tracer, tickerService, dictionaryService, cfg.TickerPollSecs, cfg.DictionaryRebuildMins).Observe(m)
	startPollerFunc(poller, ctx)

	stopListener, err := startListenerFunc(bot.NewListener(signalService, m), cfg.TelegramBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start Telegram listener")
	}

	h := handler.New(tracer, signalService, dictionaryService, tickerService, cfg.APIKey)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(tracing.ServiceName))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(m.Handler()))

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info().Msg("shutting down server")

	stopListener()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}

// redisClient keeps a nil client a nil interface so services skip the cache.
func redisClient(rdb *redis.Client) service.RedisClient {
	if rdb == nil {
		return nil
	}
	return rdb
}

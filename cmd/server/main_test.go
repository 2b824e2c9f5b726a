package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"pump-radar/internal/bot"
	"pump-radar/internal/config"
	"pump-radar/internal/domain"
	"pump-radar/internal/job"
	"pump-radar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps(t)
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func TestRedisClientKeepsNilInterface(t *testing.T) {
	if redisClient(nil) != nil {
		t.Fatal("expected nil interface for nil client")
	}
	if redisClient(redis.NewClient(&redis.Options{Addr: "localhost:6379"})) == nil {
		t.Fatal("expected non-nil interface")
	}
}

func stubServerDeps(t *testing.T) func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitLogger := initLoggerFunc
	origInitTracer := initTracerFunc
	origPostgres := connectPostgresFunc
	origRedis := connectRedisFunc
	origListers := newListersFunc
	origStartPoller := startPollerFunc
	origStartListener := startListenerFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			HTTPPort:                8080,
			TickerPollSecs:          1,
			DictionaryRebuildMins:   1,
			DictionaryExchange:      "bittrex",
			BaseCurrency:            "BTC",
			MentionWeightMode:       "canonical",
			ExpectedPumpEpsilonSecs: 120,
		}
	}
	initLoggerFunc = func(string, string) {}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	connectPostgresFunc = func(context.Context, string) (*pgxpool.Pool, error) { return nil, nil }
	connectRedisFunc = func(context.Context, string) (*redis.Client, error) { return nil, nil }
	newListersFunc = func(*config.Config, trace.Tracer) []service.PairLister {
		return []service.PairLister{stubLister{}}
	}
	startPollerFunc = func(p *job.MarketPoller, ctx context.Context) {
		if p == nil {
			t.Error("expected poller")
		}
	}
	startListenerFunc = func(l *bot.Listener, token string) (func(), error) {
		if l == nil {
			t.Error("expected listener")
		}
		return func() {}, nil
	}
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine { return gin.New() }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initLoggerFunc = origInitLogger
		initTracerFunc = origInitTracer
		connectPostgresFunc = origPostgres
		connectRedisFunc = origRedis
		newListersFunc = origListers
		startPollerFunc = origStartPoller
		startListenerFunc = origStartListener
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}

type stubLister struct{}

func (stubLister) Exchange() string { return "bittrex" }

func (stubLister) ListActivePairs(ctx context.Context) ([]domain.MarketPair, error) {
	return []domain.MarketPair{{Ticker: "LTC", Name: "Litecoin"}}, nil
}

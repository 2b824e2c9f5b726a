package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
)

func stubRedis(t *testing.T, pingErr error) *string {
	t.Helper()
	origNewClient := newRedisClient
	origPing := pingRedis
	t.Cleanup(func() {
		newRedisClient = origNewClient
		pingRedis = origPing
	})

	captured := new(string)
	newRedisClient = func(opts *redis.Options) *redis.Client {
		*captured = opts.Addr
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return pingErr
	}
	return captured
}

func TestConnectWithCustomAddr(t *testing.T) {
	addr := stubRedis(t, nil)

	client, err := Connect(context.Background(), "redis:9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()
	if *addr != "redis:9999" {
		t.Fatalf("expected custom addr, got %s", *addr)
	}
}

func TestConnectDefaults(t *testing.T) {
	addr := stubRedis(t, nil)

	client, err := Connect(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()
	if *addr != "localhost:6379" {
		t.Fatalf("expected default addr, got %s", *addr)
	}
}

func TestConnectParsesURL(t *testing.T) {
	addr := stubRedis(t, nil)

	client, err := Connect(context.Background(), "redis://:secret@cache.internal:6380/2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()
	if *addr != "cache.internal:6380" {
		t.Fatalf("expected parsed addr, got %s", *addr)
	}
	if client.Options().DB != 2 || client.Options().Password != "secret" {
		t.Fatalf("unexpected options: %+v", client.Options())
	}
}

func TestConnectPingFailure(t *testing.T) {
	stubRedis(t, errors.New("connection refused"))

	if _, err := Connect(context.Background(), "redis:1"); err == nil {
		t.Fatal("expected ping failure to be returned")
	}
}

func TestOptionsBadURL(t *testing.T) {
	if _, err := Options("redis://%zz"); err == nil {
		t.Fatal("expected parse error")
	}
}

package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestConnect_PingsServer(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	opts := client.Options()
	if opts.PoolSize != poolSize {
		t.Fatalf("expected pool size %d, got %d", poolSize, opts.PoolSize)
	}
	if opts.MinIdleConns != minIdleConns {
		t.Fatalf("expected min idle conns %d, got %d", minIdleConns, opts.MinIdleConns)
	}
}

func TestConnect_UnreachableServer(t *testing.T) {
	if _, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

package cache

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// memoryHook answers GET, SET and DEL from a map so RedisCache can be
// exercised without a server. Commands never reach the network.
type memoryHook struct {
	mu   sync.Mutex
	data map[string]string
}

func (h *memoryHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *memoryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *memoryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.mu.Lock()
		defer h.mu.Unlock()

		args := cmd.Args()
		key, _ := args[1].(string)
		switch c := cmd.(type) {
		case *redis.StringCmd:
			v, ok := h.data[key]
			if !ok {
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.StatusCmd:
			switch v := args[2].(type) {
			case []byte:
				h.data[key] = string(v)
			case string:
				h.data[key] = v
			}
			c.SetVal("OK")
		case *redis.IntCmd:
			_, ok := h.data[key]
			delete(h.data, key)
			if ok {
				c.SetVal(1)
			}
		default:
			return next(ctx, cmd)
		}
		return nil
	}
}

func newMemoryRedis(t *testing.T, prefix string) (*RedisCache, *memoryHook) {
	t.Helper()
	hook := &memoryHook{data: make(map[string]string)}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(hook)
	c := NewRedisCacheFromClient(client, prefix)
	t.Cleanup(func() { _ = c.Close() })
	return c, hook
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, hook := newMemoryRedis(t, "ltd:")

	data, hit, err := c.Get(ctx, "run")
	if err != nil || hit || data != nil {
		t.Fatalf("missing key Get = %q, %v, %v; want miss without error", data, hit, err)
	}

	if err := c.Set(ctx, "run", []byte("0.75"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok := hook.data["ltd:run"]; !ok {
		t.Errorf("key not stored under prefix: %v", hook.data)
	}
	data, hit, err = c.Get(ctx, "run")
	if err != nil || !hit || string(data) != "0.75" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "run"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "run"); hit {
		t.Error("entry survived Delete")
	}
}

func TestNewRedisCacheErrors(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	closed := ln.Addr().String()
	ln.Close()

	tests := []struct {
		name string
		url  string
	}{
		{"bad scheme", "http://localhost:6379"},
		{"bad database", "redis://localhost:6379/notanumber"},
		{"unreachable", "redis://" + closed + "/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			c, err := NewRedisCache(ctx, tt.url, "ltd:")
			if err == nil {
				c.Close()
				t.Fatalf("NewRedisCache(%q) succeeded, want error", tt.url)
			}
		})
	}
}

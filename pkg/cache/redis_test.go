package cache

import (
	"testing"

	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

func TestNewRedisClientDisabled(t *testing.T) {
	if c := NewRedisClient(utils.RedisConfig{Enabled: false}, zap.NewNop()); c != nil {
		t.Fatalf("expected nil client when disabled")
	}
}

func TestNewRedisClientUnreachable(t *testing.T) {
	// port 1 refuses connections on any sane host
	c := NewRedisClient(utils.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}, zap.NewNop())
	if c != nil {
		t.Fatalf("expected nil client for unreachable redis")
	}
}

func TestNewRedisStoreNilClient(t *testing.T) {
	if s := NewRedisStore(nil); s != nil {
		t.Fatalf("expected nil store for nil client")
	}
}

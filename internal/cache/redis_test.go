package cache

import (
	"context"
	"testing"
)

func TestNamespaceKey(t *testing.T) {
	c := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"plain key", "foo", "pulse:foo"},
		{"nested key", "notifs:unread:7", "pulse:notifs:unread:7"},
		{"empty key", "", "pulse:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.namespaceKey(tt.key); got != tt.expected {
				t.Errorf("namespaceKey(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestUnreadCountKey(t *testing.T) {
	if got := UnreadCountKey(42); got != "notifs:unread:42" {
		t.Errorf("UnreadCountKey(42) = %q, want notifs:unread:42", got)
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	if _, err := c.GetInt64(ctx, "k"); err != ErrCacheDisabled {
		t.Errorf("GetInt64 error = %v, want ErrCacheDisabled", err)
	}
	if err := c.SetInt64(ctx, "k", 1, 0); err != ErrCacheDisabled {
		t.Errorf("SetInt64 error = %v, want ErrCacheDisabled", err)
	}
	if err := c.Delete(ctx, "k"); err != ErrCacheDisabled {
		t.Errorf("Delete error = %v, want ErrCacheDisabled", err)
	}
	if err := c.Health(ctx); err != ErrCacheDisabled {
		t.Errorf("Health error = %v, want ErrCacheDisabled", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close error = %v, want nil", err)
	}
}

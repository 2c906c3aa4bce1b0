package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testRedis connects to DEPRECAUDIT_TEST_REDIS_URL, or a local server on
// database 15, and skips the test when nothing answers.
func testRedis(t *testing.T) (*RedisCache, redis.UniversalClient) {
	t.Helper()
	url := os.Getenv("DEPRECAUDIT_TEST_REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/15"
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("DEPRECAUDIT_TEST_REDIS_URL: %v", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("no redis server at %s: %v", url, err)
	}

	prefix := fmt.Sprintf("deprecaudit-test:%d:", time.Now().UnixNano())
	c := NewRedisCache(client, prefix)
	t.Cleanup(func() {
		c.Clear(context.Background())
		c.Close()
	})
	return c, client
}

func TestRedisCache_GetSet(t *testing.T) {
	c, client := testRedis(t)
	ctx := context.Background()

	data, ok, err := c.Get(ctx, "page:missing")
	if err != nil || ok || data != nil {
		t.Errorf("Get(missing) = %q, %v, %v; want a clean miss", data, ok, err)
	}

	if err := c.Set(ctx, "page:a", []byte(`{"reachable":true}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err = c.Get(ctx, "page:a")
	if err != nil || !ok || string(data) != `{"reachable":true}` {
		t.Errorf("Get(page:a) = %q, %v, %v", data, ok, err)
	}

	ttl, err := client.TTL(ctx, c.prefix+"page:a").Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL = %v, want within (0, 1h]", ttl)
	}

	if err := c.Set(ctx, "feed:b", []byte("x"), 0); err != nil {
		t.Fatalf("Set without ttl: %v", err)
	}
	if ttl, _ := client.TTL(ctx, c.prefix+"feed:b").Result(); ttl != -1 {
		t.Errorf("TTL with ttl 0 = %v, want no expiry", ttl)
	}

	if err := c.Delete(ctx, "page:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "page:a"); ok {
		t.Error("Get after Delete should miss")
	}
}

func TestRedisCache_ClearKeepsOtherPrefixes(t *testing.T) {
	c, client := testRedis(t)
	ctx := context.Background()

	for _, k := range []string{"page:a", "page:b", "feed:c"} {
		if err := c.Set(ctx, k, []byte("v"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	other := c.prefix[:len(c.prefix)-1] + "-other:page:a"
	if err := client.Set(ctx, other, "v", time.Hour).Err(); err != nil {
		t.Fatal(err)
	}
	defer client.Del(ctx, other)

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d keys, want 3", n)
	}
	if _, ok, _ := c.Get(ctx, "feed:c"); ok {
		t.Error("Clear left feed:c behind")
	}
	if exists, _ := client.Exists(ctx, other).Result(); exists != 1 {
		t.Error("Clear removed a key outside its prefix")
	}
}

func TestNewRedisCacheFromURLRejectsScheme(t *testing.T) {
	if _, err := NewRedisCacheFromURL("http://localhost:6379"); err == nil {
		t.Error("NewRedisCacheFromURL(http://...) should fail")
	}
}

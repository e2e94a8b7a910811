package utils

import (
	"testing"
	"time"
)

func TestCacheSetGetDelete(t *testing.T) {
	cache := GetCache()
	cache.Purge()

	cache.Set("k", []string{"a", "b"}, time.Minute)

	got, ok := cache.Get("k").([]string)
	if !ok || len(got) != 2 {
		t.Fatalf("Get = %v", cache.Get("k"))
	}

	cache.Delete("k")
	if cache.Get("k") != nil {
		t.Fatal("key should be gone after Delete")
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := GetCache()
	cache.Purge()

	cache.Set("k", "v", -time.Second) // 写入即过期
	if cache.Get("k") != nil {
		t.Fatal("expired entry should read as nil")
	}
}

func TestCacheMissIsNil(t *testing.T) {
	cache := GetCache()
	cache.Purge()

	if cache.Get("absent") != nil {
		t.Fatal("missing key should read as nil")
	}
}

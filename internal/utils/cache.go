package utils

import (
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// 缓存的是少量热点列表（首页问题列表、排行榜这类），
// 容量给小，新鲜度靠 TTL，容量压力靠 LRU 兜底。
const cacheCapacity = 128

// cacheEntry 包装缓存数据和过期时间
type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// GlobalCache 进程内本地缓存，多个 goroutine 并发安全
type GlobalCache struct {
	entries *lru.Cache[string, cacheEntry]
}

var (
	cacheInstance *GlobalCache
	cacheOnce     sync.Once
)

// GetCache 获取单例缓存实例
func GetCache() *GlobalCache {
	cacheOnce.Do(func() {
		entries, err := lru.New[string, cacheEntry](cacheCapacity)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		cacheInstance = &GlobalCache{entries: entries}
	})
	return cacheInstance
}

// Set 设置缓存，TTL 为过期时间
func (c *GlobalCache) Set(key string, data interface{}, ttl time.Duration) {
	c.entries.Add(key, cacheEntry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	})
}

// Get 获取缓存，不存在或已过期返回 nil，过期条目顺手清掉
func (c *GlobalCache) Get(key string) interface{} {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		c.entries.Remove(key)
		return nil
	}
	return entry.data
}

// Delete 删除指定缓存，写路径用它做失效
func (c *GlobalCache) Delete(key string) {
	c.entries.Remove(key)
}

// Purge 清空全部缓存，测试用
func (c *GlobalCache) Purge() {
	c.entries.Purge()
}

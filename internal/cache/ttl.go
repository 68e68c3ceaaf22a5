package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL 读取结果的默认缓存时间
const DefaultTTL = 10 * time.Minute

// Key 缓存键：试算表 + 分页名
type Key struct {
	Spreadsheet string
	Sheet       string
}

func (k Key) String() string {
	return k.Spreadsheet + "\x00" + k.Sheet
}

// Stats 缓存统计
type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	TTL     string `json:"ttl"`
}

// TTL 带过期时间的进程内缓存
// 条目要么不存在，要么是完整的计算结果；错误不缓存
type TTL[V any] struct {
	lru   *expirable.LRU[Key, V]
	group singleflight.Group
	ttl   time.Duration

	mu  sync.Mutex
	gen uint64 // Clear 之后递增，丢弃清空前发起的计算结果

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New 创建缓存；size <= 0 不限条目数，ttl <= 0 使用 DefaultTTL
func New[V any](size int, ttl time.Duration) *TTL[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if size < 0 {
		size = 0
	}
	return &TTL[V]{
		lru: expirable.NewLRU[Key, V](size, nil, ttl),
		ttl: ttl,
	}
}

// Get 读取未过期的条目
func (c *TTL[V]) Get(key Key) (V, bool) {
	return c.lru.Get(key)
}

// GetOrCompute 命中则直接返回；未命中时调用 compute，同一键的并发请求只计算一次
// compute 使用不可取消的 ctx 运行，单个调用方取消只影响自己
func (c *TTL[V]) GetOrCompute(ctx context.Context, key Key, compute func(ctx context.Context) (V, error)) (V, error) {
	var zero V
	if v, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return v, nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	// 清空之后的请求不会并入清空之前的读取
	flightKey := fmt.Sprintf("%d\x00%s", gen, key.String())
	shared := context.WithoutCancel(ctx)

	ch := c.group.DoChan(flightKey, func() (any, error) {
		if v, ok := c.lru.Get(key); ok {
			c.hits.Add(1)
			return v, nil
		}
		c.misses.Add(1)

		v, err := compute(shared)
		if err != nil {
			return v, err
		}

		c.mu.Lock()
		if gen == c.gen {
			c.lru.Add(key, v)
		}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	}
}

// Clear 清空全部条目
func (c *TTL[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lru.Purge()
}

// Len 当前条目数（含尚未清理的过期条目）
func (c *TTL[V]) Len() int {
	return c.lru.Len()
}

// Stats 返回统计信息
func (c *TTL[V]) Stats() Stats {
	return Stats{
		Entries: c.lru.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		TTL:     c.ttl.String(),
	}
}

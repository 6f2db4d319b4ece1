// Package cache 提供整页缓存：渲染结果在固定时间内原样返回，
// 写操作不会使其失效，只有超时或显式清空才会触发重新渲染。
package cache

import (
	"context"
	"time"
)

// Entry 保存一次完整的页面渲染结果
type Entry struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store 定义页面缓存的存储接口
type Store interface {
	// Get 返回键对应的未过期条目
	Get(ctx context.Context, key string) (Entry, bool)
	// Set 在给定的存活时间内缓存条目
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration)
	// Flush 清空全部缓存条目，强制下一次请求重新渲染
	Flush(ctx context.Context) error
}

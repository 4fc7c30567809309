package cache

import "time"

// LogicalExpire 支持逻辑过期的数据结构.
// The physical key outlives ExpireAt so readers can serve stale data while one
// goroutine rebuilds it.
type LogicalExpire[T any] struct {
	Data      T         `json:"data"`
	ExpireAt  time.Time `json:"expire_at"`  // 逻辑过期时间
	CreatedAt time.Time `json:"created_at"` // 创建时间，用于调试
}

// IsLogicalExpired 检查是否逻辑过期
func (d *LogicalExpire[T]) IsLogicalExpired() bool {
	return time.Now().After(d.ExpireAt)
}

// NewLogicalExpire wraps data with a logical expiry ttl from now.
func NewLogicalExpire[T any](data T, ttl time.Duration) *LogicalExpire[T] {
	now := time.Now()
	return &LogicalExpire[T]{
		Data:      data,
		ExpireAt:  now.Add(ttl),
		CreatedAt: now,
	}
}

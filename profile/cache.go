package profile

import (
	"context"
	"encoding/json"

	"github.com/vinolab/sommkit/core"
)

// Cache 是按用户缓存口味画像的可选组件。
//
// 核心契约仍然是"每次请求用当前评分重建画像"；Cache 只是宿主应用
// 的显式记忆层：key 按用户划分，失效规则唯一——该用户写入新评分时
// 调用 Invalidate。不依赖任何隐式生命周期。
//
// key 布局：{KeyPrefix}:{userID}，JSON 序列化的 TasteProfile。
type Cache struct {
	store core.Store

	// KeyPrefix 默认 "profile:taste"
	KeyPrefix string

	// TTL 缓存过期时间（秒），0 表示不过期（只靠 Invalidate）
	TTL int
}

// NewCache 创建画像缓存。
func NewCache(s core.Store, keyPrefix string, ttl int) *Cache {
	if keyPrefix == "" {
		keyPrefix = "profile:taste"
	}
	return &Cache{
		store:     s,
		KeyPrefix: keyPrefix,
		TTL:       ttl,
	}
}

func (c *Cache) key(userID string) string {
	return c.KeyPrefix + ":" + userID
}

// Get 读取缓存画像；未命中返回 (nil, nil)。
func (c *Cache) Get(ctx context.Context, userID string) (*core.TasteProfile, error) {
	data, err := c.store.Get(ctx, c.key(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var p core.TasteProfile
	if err := json.Unmarshal(data, &p); err != nil {
		// 缓存损坏按未命中处理，由上层重建
		return nil, nil
	}
	return &p, nil
}

// Put 写入画像缓存。
func (c *Cache) Put(ctx context.Context, userID string, p *core.TasteProfile) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if c.TTL > 0 {
		return c.store.Set(ctx, c.key(userID), data, c.TTL)
	}
	return c.store.Set(ctx, c.key(userID), data)
}

// Invalidate 令某个用户的画像缓存失效。记录新评分后必须调用。
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	return c.store.Delete(ctx, c.key(userID))
}

// GetOrBuild 先查缓存，未命中则从评分存储重建并回填。
func (c *Cache) GetOrBuild(ctx context.Context, userID string, ratings RatingStore) (*core.TasteProfile, error) {
	if p, err := c.Get(ctx, userID); err != nil {
		return nil, err
	} else if p != nil {
		return p, nil
	}

	rs, err := ratings.GetUserRatings(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := Build(rs)
	if err := c.Put(ctx, userID, p); err != nil {
		return nil, err
	}
	return p, nil
}

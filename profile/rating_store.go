package profile

import (
	"context"
	"encoding/json"

	"github.com/vinolab/sommkit/core"
)

// RatingStore 是评分记录来源的领域接口（feed A）。
// 引擎对评分只读；AppendRating 供宿主应用在记录新评分时使用，
// 以便和画像缓存失效挂在同一处。
type RatingStore interface {
	// GetUserRatings 获取某个用户的全部评分记录（任意顺序）
	GetUserRatings(ctx context.Context, userID string) ([]core.Rating, error)
}

// StoreRatingAdapter 是基于 core.Store 的评分存储适配器。
//
// key 布局：
//   - 用户评分列表：{KeyPrefix}:user:{userID}，JSON 数组
type StoreRatingAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，默认 "rating"
	KeyPrefix string
}

// NewStoreRatingAdapter 创建一个基于 core.Store 的评分适配器。
func NewStoreRatingAdapter(s core.Store, keyPrefix string) *StoreRatingAdapter {
	if keyPrefix == "" {
		keyPrefix = "rating"
	}
	return &StoreRatingAdapter{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

func (a *StoreRatingAdapter) userKey(userID string) string {
	return a.KeyPrefix + ":user:" + userID
}

func (a *StoreRatingAdapter) GetUserRatings(ctx context.Context, userID string) ([]core.Rating, error) {
	data, err := a.store.Get(ctx, a.userKey(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			// 没评过分不是错误，是空画像
			return []core.Rating{}, nil
		}
		return nil, err
	}

	var ratings []core.Rating
	if err := json.Unmarshal(data, &ratings); err != nil {
		return nil, err
	}

	return ratings, nil
}

// AppendRating 追加一条评分记录。调用方应随后令该用户的画像缓存失效
// （见 Cache.Invalidate）。
func (a *StoreRatingAdapter) AppendRating(ctx context.Context, userID string, r core.Rating) error {
	ratings, err := a.GetUserRatings(ctx, userID)
	if err != nil {
		return err
	}
	ratings = append(ratings, r)

	data, err := json.Marshal(ratings)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.userKey(userID), data)
}

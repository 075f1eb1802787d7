package source

import (
	"context"
	"encoding/json"

	"github.com/vinolab/sommkit/core"
)

// wineDoc 是 Store 中一款酒的 JSON 文档（key: {WineKeyPrefix}:{wineID}）。
// 由宿主应用的酒库管理侧写入，这里只读。
type wineDoc struct {
	WineID    string   `json:"wine_id"`
	WineType  string   `json:"wine_type"`
	Region    string   `json:"region"`
	Country   string   `json:"country"`
	StyleTags []string `json:"style_tags"`
	Producer  string   `json:"producer"`
	Vintage   int      `json:"vintage"`
	ImageURL  string   `json:"image_url"`
}

func (d *wineDoc) toCandidate() *core.Candidate {
	c := core.NewCandidate(d.WineID)
	c.WineType = d.WineType
	c.Region = d.Region
	c.Country = d.Country
	c.StyleTags = d.StyleTags
	c.Producer = d.Producer
	c.Vintage = d.Vintage
	c.ImageURL = d.ImageURL
	return c
}

// loadWines 按 ID 顺序批量读取酒文档并转为候选。
// 缺文档/坏文档的 ID 直接跳过——候选池允许有洞，不算错误。
func loadWines(ctx context.Context, store core.Store, wineKeyPrefix string, ids []string) ([]*core.Candidate, error) {
	if store == nil || len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, wineKeyPrefix+":"+id)
	}

	docs, err := store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Candidate, 0, len(ids))
	for i, id := range ids {
		data, ok := docs[keys[i]]
		if !ok {
			continue
		}
		var doc wineDoc
		if json.Unmarshal(data, &doc) != nil {
			continue
		}
		if doc.WineID == "" {
			doc.WineID = id
		}
		out = append(out, doc.toCandidate())
	}
	return out, nil
}

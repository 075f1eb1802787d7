package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pipeline"
	"github.com/vinolab/sommkit/profile"
	"github.com/vinolab/sommkit/rerank"
	"github.com/vinolab/sommkit/score"
	"github.com/vinolab/sommkit/source"
	"github.com/vinolab/sommkit/store"
)

func testRatings() []core.Rating {
	return []core.Rating{
		{WineID: "w-101", WineType: "red", Region: "Bordeaux", Country: "France",
			StyleTags: []string{"full-bodied", "oaky"}, Score: 5,
			RatedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		{WineID: "w-102", WineType: "red", Region: "Rioja", Country: "Spain",
			StyleTags: []string{"full-bodied"}, Score: 4,
			RatedAt: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)},
		{WineID: "w-103", WineType: "white", Region: "Loire", Country: "France",
			StyleTags: []string{"dry"}, Score: 3,
			RatedAt: time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)},
	}
}

func testCandidate(id, wineType, region, country string, tags ...string) *core.Candidate {
	c := core.NewCandidate(id)
	c.WineType = wineType
	c.Region = region
	c.Country = country
	c.StyleTags = tags
	return c
}

func TestGetRecommendations_OrderAndTruncate(t *testing.T) {
	p := BuildTasteProfile(testRatings())

	candidates := []*core.Candidate{
		testCandidate("w-1", "sparkling", "Champagne", "Italy"),
		testCandidate("w-2", "red", "Bordeaux", "France", "full-bodied"),
		testCandidate("w-3", "white", "Loire", "France", "dry"),
		testCandidate("w-4", "rose", "Provence", "France"),
	}

	recs := GetRecommendations(p, candidates, 2)

	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	// 红 Bordeaux 压倒白 Loire：类型第一名 + 产区第一名 + 风格命中
	if recs[0].WineID != "w-2" {
		t.Errorf("top = %s, want w-2", recs[0].WineID)
	}
	if recs[1].WineID != "w-3" {
		t.Errorf("second = %s, want w-3", recs[1].WineID)
	}
	if recs[0].MatchScore <= recs[1].MatchScore {
		t.Errorf("scores not descending: %d <= %d", recs[0].MatchScore, recs[1].MatchScore)
	}

	// 首位推荐应同时带类型命中与产区命中两条原因
	hasType, hasRegion := false, false
	for _, r := range recs[0].MatchReasons {
		switch r {
		case "Matches your favorite wine type":
			hasType = true
		case "From your favorite wine region":
			hasRegion = true
		}
	}
	if !hasType || !hasRegion {
		t.Errorf("top reasons = %v, want type and region matches", recs[0].MatchReasons)
	}
}

func TestGetRecommendations_NonPositiveLimit(t *testing.T) {
	p := BuildTasteProfile(testRatings())
	candidates := []*core.Candidate{testCandidate("w-1", "red", "", "")}

	for _, limit := range []int{0, -1} {
		recs := GetRecommendations(p, candidates, limit)
		if len(recs) != 0 {
			t.Errorf("limit=%d: len = %d, want 0", limit, len(recs))
		}
		if recs == nil {
			t.Errorf("limit=%d: want empty list, got nil", limit)
		}
	}
}

func TestGetRecommendations_TieKeepsInputOrder(t *testing.T) {
	// 空画像下所有候选同拿冷启动分，顺序必须与输入一致。
	candidates := []*core.Candidate{
		testCandidate("w-c", "red", "", ""),
		testCandidate("w-a", "white", "", ""),
		testCandidate("w-b", "rose", "", ""),
	}

	recs := GetRecommendations(core.NewTasteProfile(), candidates, 10)

	want := []string{"w-c", "w-a", "w-b"}
	for i, w := range want {
		if recs[i].WineID != w {
			t.Errorf("recs[%d] = %s, want %s", i, recs[i].WineID, w)
		}
	}
}

func TestGetRecommendations_NilProfile(t *testing.T) {
	recs := GetRecommendations(nil, []*core.Candidate{testCandidate("w-1", "red", "", "")}, 5)

	if len(recs) != 1 {
		t.Fatalf("len = %d, want 1", len(recs))
	}
	if recs[0].MatchScore != 15 {
		t.Errorf("score = %d, want cold-start baseline 15", recs[0].MatchScore)
	}
}

func TestGetRecommendations_ExcludeRated(t *testing.T) {
	p := BuildTasteProfile(testRatings())

	rated := testCandidate("w-101", "red", "Bordeaux", "France")
	rated.AlreadyRated = true
	fresh := testCandidate("w-201", "red", "Bordeaux", "France")

	recs := GetRecommendations(p, []*core.Candidate{rated, fresh}, 10, WithExcludeRated())

	if len(recs) != 1 || recs[0].WineID != "w-201" {
		t.Errorf("recs = %+v, want only w-201", recs)
	}

	// 不带选项时已评分候选照常参与
	recs = GetRecommendations(p, []*core.Candidate{rated, fresh}, 10)
	if len(recs) != 2 {
		t.Errorf("without option len = %d, want 2", len(recs))
	}
}

func TestGetRecommendations_CustomBonusTable(t *testing.T) {
	p := BuildTasteProfile(testRatings())
	b := &score.BonusTable{TypeRankBonus: []int{50}}

	recs := GetRecommendations(p, []*core.Candidate{testCandidate("w-1", "red", "", "")}, 5, WithBonusTable(b))

	if recs[0].MatchScore != 50 {
		t.Errorf("score = %d, want 50 from custom table", recs[0].MatchScore)
	}
}

func TestEngine_RecommendForUser(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	data, _ := json.Marshal(testRatings())
	if err := memStore.Set(ctx, "rating:user:alice", data); err != nil {
		t.Fatalf("seed ratings: %v", err)
	}

	wines := []*core.Candidate{
		testCandidate("w-201", "red", "Bordeaux", "France", "full-bodied"),
		testCandidate("w-202", "sparkling", "Champagne", "Italy"),
		testCandidate("w-203", "white", "Loire", "France", "dry"),
	}

	e := &Engine{
		Ratings:  profile.NewStoreRatingAdapter(memStore, ""),
		Profiles: profile.NewCache(memStore, "", 300),
		Pipeline: &pipeline.Pipeline{
			Nodes: []pipeline.Node{
				&source.EventWines{Wines: wines},
				&score.Node{},
				&rerank.TopN{N: 2},
			},
		},
	}

	rctx := &core.RecommendContext{UserID: "alice", EventID: "tasting-1", Scope: core.ScopeEvent}
	recs, err := e.RecommendForUser(ctx, rctx, 2)
	if err != nil {
		t.Fatalf("RecommendForUser: %v", err)
	}

	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].WineID != "w-201" {
		t.Errorf("top = %s, want w-201", recs[0].WineID)
	}

	// 画像应已写入缓存
	cached, err := e.Profiles.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("cache get: %v", err)
	}
	if cached == nil || cached.TotalRatings != 3 {
		t.Errorf("cached profile = %+v, want TotalRatings=3", cached)
	}
}

func TestEngine_RecommendForUser_NonPositiveLimit(t *testing.T) {
	e := &Engine{}
	recs, err := e.RecommendForUser(context.Background(), &core.RecommendContext{UserID: "u"}, 0)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len = %d, want 0", len(recs))
	}
}

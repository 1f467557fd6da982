// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

// Package ranking computes engagement-ranked recipe IDs from full
// collection scans of the engagement store. Every call rescans both
// collections; there is no incremental variant.
package ranking

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mealmuse/mealmuse-go/mealmusedb"
)

// Source provides the collection scans the aggregator ranks over.
type Source interface {
	ListEngagement(ctx context.Context) ([]mealmusedb.Engagement, error)
	ListComments(ctx context.Context) ([]mealmusedb.Comment, error)
}

// NewAggregator returns an Aggregator reading from the given source.
func NewAggregator(src Source) *Aggregator {
	return &Aggregator{
		src: src,
	}
}

// Aggregator ranks recipes by engagement.
type Aggregator struct {
	src Source
}

type scored struct {
	recipeID string
	score    int
}

// MostEngaged returns up to limit recipe IDs ordered descending by
// engagement score (likes + comments). Recipes scoring zero are never
// returned; ties keep scan order. A failed scan yields an empty list.
func (a *Aggregator) MostEngaged(ctx context.Context, limit int) []string {
	records, err := a.src.ListEngagement(ctx)
	if err != nil {
		slog.WarnContext(ctx, "ranking: scanning engagement", "error", err)
		return nil
	}
	comments, err := a.src.ListComments(ctx)
	if err != nil {
		slog.WarnContext(ctx, "ranking: scanning comments", "error", err)
		return nil
	}

	commentCounts := make(map[string]int, len(comments))
	for _, comment := range comments {
		if comment.RecipeID != "" {
			commentCounts[comment.RecipeID]++
		}
	}

	return top(records, limit, func(rec mealmusedb.Engagement) int {
		return len(rec.Likes) + commentCounts[rec.RecipeID]
	})
}

// MostLiked is MostEngaged ignoring comments.
func (a *Aggregator) MostLiked(ctx context.Context, limit int) []string {
	records, err := a.src.ListEngagement(ctx)
	if err != nil {
		slog.WarnContext(ctx, "ranking: scanning engagement", "error", err)
		return nil
	}

	return top(records, limit, func(rec mealmusedb.Engagement) int {
		return len(rec.Likes)
	})
}

func top(records []mealmusedb.Engagement, limit int, score func(mealmusedb.Engagement) int) []string {
	if limit <= 0 {
		return nil
	}

	ranked := make([]scored, 0, len(records))
	for _, rec := range records {
		if s := score(rec); s > 0 {
			ranked = append(ranked, scored{recipeID: rec.RecipeID, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.recipeID
	}
	return ids
}

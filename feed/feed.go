// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

// Package feed builds the home feed: the most engaged recipes first,
// the remaining slots filled with randomized discovery picks, the
// whole page shuffled before display.
package feed

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/mealmuse/mealmuse-go/mealdb"
)

// Ranker supplies engagement-ranked recipe IDs.
type Ranker interface {
	MostEngaged(ctx context.Context, limit int) []string
}

// Sampler supplies randomized recipe picks.
type Sampler interface {
	Sample(ctx context.Context, count int, excludeIDs []string) []mealdb.Recipe
}

// Catalog resolves recipe IDs to full recipes.
type Catalog interface {
	LookupByID(ctx context.Context, id string) (*mealdb.Recipe, error)
}

// Options size the feed pages.
type Options struct {
	// InitialSize is the number of recipes on the first page.
	InitialSize int

	// PageSize is the number of recipes per subsequent page.
	PageSize int

	// TopEngaged is how many engagement-ranked recipes lead the first
	// page.
	TopEngaged int
}

// DefaultOptions returns the stock feed sizes.
func DefaultOptions() Options {
	return Options{
		InitialSize: 12,
		PageSize:    6,
		TopEngaged:  6,
	}
}

// New returns a Feed composing the given ranker, sampler, and catalog.
// The random source may be seeded for deterministic pages; it is only
// used from the calling goroutine.
func New(ranker Ranker, sampler Sampler, catalog Catalog, rng *rand.Rand, opts Options) *Feed {
	return &Feed{
		ranker:  ranker,
		sampler: sampler,
		catalog: catalog,
		rng:     rng,
		opts:    opts,
	}
}

// Feed produces pages of recipes for the home view.
type Feed struct {
	ranker  Ranker
	sampler Sampler
	catalog Catalog
	rng     *rand.Rand
	opts    Options
}

// Initial returns the first feed page: the top engaged recipes plus
// randomized picks filling the page, shuffled together. Engagement
// ranking degrades to an all-random page when unavailable.
func (f *Feed) Initial(ctx context.Context) []mealdb.Recipe {
	top := f.resolve(ctx, f.ranker.MostEngaged(ctx, f.opts.TopEngaged))

	remaining := f.opts.InitialSize - len(top)
	if remaining > 0 {
		exclude := make([]string, len(top))
		for i, recipe := range top {
			exclude[i] = recipe.ID
		}
		top = append(top, f.sampler.Sample(ctx, remaining, exclude)...)
	}

	f.rng.Shuffle(len(top), func(i, j int) {
		top[i], top[j] = top[j], top[i]
	})
	return top
}

// More returns the next feed page, omitting the already shown IDs. An
// empty result means the catalog has no more distinct recipes to show.
func (f *Feed) More(ctx context.Context, excludeIDs []string) []mealdb.Recipe {
	return f.sampler.Sample(ctx, f.opts.PageSize, excludeIDs)
}

// resolve looks up full recipes for ranked IDs, dropping any that fail
// or are no longer in the catalog.
func (f *Feed) resolve(ctx context.Context, ids []string) []mealdb.Recipe {
	resolved := make([]*mealdb.Recipe, len(ids))
	var grp errgroup.Group
	for i, id := range ids {
		grp.Go(func() error {
			recipe, err := f.catalog.LookupByID(ctx, id)
			if err != nil {
				slog.WarnContext(ctx, "feed: resolving ranked recipe", "recipeId", id, "error", err)
				return nil
			}
			resolved[i] = recipe
			return nil
		})
	}
	_ = grp.Wait()

	out := make([]mealdb.Recipe, 0, len(resolved))
	for _, recipe := range resolved {
		if recipe != nil {
			out = append(out, *recipe)
		}
	}
	return out
}

// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

// Package discovery samples a diverse set of recipes from the catalog.
// The catalog has no "give me N random items" primitive, so the
// sampler fans out randomized letter, category, and area queries and
// shapes the union into a deduplicated, shuffled feed page.
package discovery

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/wandb/parallel"
	"golang.org/x/sync/errgroup"

	"github.com/mealmuse/mealmuse-go/mealdb"
)

// Source is the catalog surface the sampler draws from.
type Source interface {
	SearchByFirstLetter(ctx context.Context, letter string) ([]mealdb.Recipe, error)
	FilterByCategory(ctx context.Context, category string) ([]mealdb.Recipe, error)
	FilterByArea(ctx context.Context, area string) ([]mealdb.Recipe, error)
	LookupByID(ctx context.Context, id string) (*mealdb.Recipe, error)
}

// Pools are the value pools each sampling strategy draws from, and how
// many values a strategy queries per sample. The pools are curation
// data, not logic; see DefaultPools for the stock curation.
type Pools struct {
	Letters    []string
	LetterDraw int

	Categories   []string
	CategoryDraw int

	Areas    []string
	AreaDraw int
}

// DefaultPools returns the stock sampling pools: all starting letters
// and the catalog's popular categories and cuisines.
func DefaultPools() Pools {
	letters := make([]string, 26)
	for i := range letters {
		letters[i] = string(rune('a' + i))
	}
	return Pools{
		Letters:      letters,
		LetterDraw:   6,
		Categories:   []string{"Beef", "Chicken", "Lamb", "Pasta", "Seafood", "Vegetarian", "Breakfast", "Dessert", "Miscellaneous"},
		CategoryDraw: 3,
		Areas:        []string{"American", "British", "Chinese", "French", "Indian", "Italian", "Japanese", "Mexican", "Thai", "Turkish"},
		AreaDraw:     3,
	}
}

// NewSampler returns a Sampler drawing from the given catalog with the
// given random source and pools. The random source may be seeded for
// deterministic sampling; it is only used from the calling goroutine.
func NewSampler(catalog Source, rng *rand.Rand, pools Pools) *Sampler {
	return &Sampler{
		catalog: catalog,
		rng:     rng,
		pools:   pools,
	}
}

// Sampler produces randomized recipe samples.
type Sampler struct {
	catalog Source
	rng     *rand.Rand
	pools   Pools
}

type strategy struct {
	name string
	run  func(ctx context.Context) ([]mealdb.Recipe, error)
}

// Sample returns up to count recipes, excluding the given IDs. Two or
// three strategies are chosen at random and run concurrently; a failed
// strategy contributes nothing, and if every strategy fails the result
// is empty, which pagination callers treat as "no more results". The
// result may be shorter than count when the catalog runs out of
// distinct matches.
func (s *Sampler) Sample(ctx context.Context, count int, excludeIDs []string) []mealdb.Recipe {
	if count <= 0 {
		return nil
	}

	// All randomness happens up front on the calling goroutine; the
	// rand source is not safe for concurrent use.
	letters := s.draw(s.pools.Letters, s.pools.LetterDraw)
	categories := s.draw(s.pools.Categories, s.pools.CategoryDraw)
	areas := s.draw(s.pools.Areas, s.pools.AreaDraw)

	strategies := []strategy{
		{name: "letters", run: func(ctx context.Context) ([]mealdb.Recipe, error) {
			return s.fanOut(ctx, letters, s.catalog.SearchByFirstLetter)
		}},
		{name: "categories", run: func(ctx context.Context) ([]mealdb.Recipe, error) {
			return s.fanOut(ctx, categories, s.catalog.FilterByCategory)
		}},
		{name: "areas", run: func(ctx context.Context) ([]mealdb.Recipe, error) {
			return s.fanOut(ctx, areas, s.catalog.FilterByArea)
		}},
	}
	s.rng.Shuffle(len(strategies), func(i, j int) {
		strategies[i], strategies[j] = strategies[j], strategies[i]
	})
	selected := strategies[:2+s.rng.IntN(2)]

	results := make([][]mealdb.Recipe, len(selected))
	grp := parallel.ErrGroup(parallel.Unlimited(ctx))
	for i, st := range selected {
		grp.Go(func(ctx context.Context) error {
			recipes, err := st.run(ctx)
			if err != nil {
				// A failed strategy is skipped, not fatal.
				slog.WarnContext(ctx, "discovery: sampling strategy failed", "strategy", st.name, "error", err)
				return nil
			}
			results[i] = recipes
			return nil
		})
	}
	_ = grp.Wait()

	var all []mealdb.Recipe
	for _, recipes := range results {
		all = append(all, recipes...)
	}
	s.rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(all))
	var picked []mealdb.Recipe
	for _, recipe := range all {
		if _, ok := seen[recipe.ID]; ok {
			continue
		}
		seen[recipe.ID] = struct{}{}
		if _, ok := excluded[recipe.ID]; ok {
			continue
		}
		picked = append(picked, recipe)
		if len(picked) == count {
			break
		}
	}

	return s.backfill(ctx, picked)
}

// draw returns n values sampled from pool without replacement.
func (s *Sampler) draw(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	drawn := make([]string, len(pool))
	copy(drawn, pool)
	s.rng.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})
	return drawn[:n]
}

// fanOut runs one catalog query per key concurrently and flattens the
// results. The join is all-or-nothing: any failed query fails the
// whole strategy.
func (s *Sampler) fanOut(ctx context.Context, keys []string, query func(context.Context, string) ([]mealdb.Recipe, error)) ([]mealdb.Recipe, error) {
	results := make([][]mealdb.Recipe, len(keys))
	var grp errgroup.Group
	for i, key := range keys {
		grp.Go(func() error {
			recipes, err := query(ctx, key)
			if err != nil {
				return err
			}
			results[i] = recipes
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	var flat []mealdb.Recipe
	for _, recipes := range results {
		flat = append(flat, recipes...)
	}
	return flat, nil
}

// backfill resolves partial records to full detail. A failed lookup
// keeps the partial record; a recipe gone from the catalog is dropped.
func (s *Sampler) backfill(ctx context.Context, recipes []mealdb.Recipe) []mealdb.Recipe {
	filled := make([]*mealdb.Recipe, len(recipes))
	var grp errgroup.Group
	for i := range recipes {
		recipe := recipes[i]
		if !recipe.Partial() {
			filled[i] = &recipe
			continue
		}
		grp.Go(func() error {
			full, err := s.catalog.LookupByID(ctx, recipe.ID)
			switch {
			case err != nil:
				slog.WarnContext(ctx, "discovery: backfilling recipe", "recipeId", recipe.ID, "error", err)
				filled[i] = &recipe
			case full == nil:
				// Gone from the catalog; drop it.
			default:
				filled[i] = full
			}
			return nil
		})
	}
	_ = grp.Wait()

	out := make([]mealdb.Recipe, 0, len(filled))
	for _, recipe := range filled {
		if recipe != nil {
			out = append(out, *recipe)
		}
	}
	return out
}

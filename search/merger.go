// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

// Package search merges name, ingredient, category, and area queries
// against the recipe catalog into one deduplicated result list, with
// each result tagged by why it matched.
package search

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mealmuse/mealmuse-go/mealdb"
)

// Match labels why a result was included.
type Match string

const (
	MatchName       Match = "name"
	MatchIngredient Match = "ingredient"
	MatchCategory   Match = "category"
	MatchArea       Match = "area"
)

// Result is a recipe tagged with its match reason. Results are for
// display only and never persisted.
type Result struct {
	mealdb.Recipe

	// Match is why the recipe was included. A recipe matching both by
	// name and by ingredient is tagged by name.
	Match Match
}

// Source is the catalog surface the merger queries.
type Source interface {
	SearchByName(ctx context.Context, query string) ([]mealdb.Recipe, error)
	FilterByIngredient(ctx context.Context, ingredient string) ([]mealdb.Recipe, error)
	FilterByCategory(ctx context.Context, category string) ([]mealdb.Recipe, error)
	FilterByArea(ctx context.Context, area string) ([]mealdb.Recipe, error)
	LookupByID(ctx context.Context, id string) (*mealdb.Recipe, error)
}

// NewMerger returns a Merger querying the given catalog.
func NewMerger(catalog Source) *Merger {
	return &Merger{
		catalog: catalog,
	}
}

// Merger combines catalog queries into tagged search results.
type Merger struct {
	catalog Source
}

// Search returns recipes matching the query by name or ingredient,
// plus recipes in the given category and area, in that priority order.
// Empty arguments skip their queries. Each recipe appears once; failed
// queries degrade to fewer results rather than an error.
func (m *Merger) Search(ctx context.Context, query, category, area string) []Result {
	var results []Result
	seen := map[string]struct{}{}

	if query != "" {
		var nameHits, ingredientHits []mealdb.Recipe
		var grp errgroup.Group
		grp.Go(func() error {
			hits, err := m.catalog.SearchByName(ctx, query)
			if err != nil {
				slog.WarnContext(ctx, "search: name query failed", "query", query, "error", err)
				return nil
			}
			nameHits = hits
			return nil
		})
		grp.Go(func() error {
			hits, err := m.catalog.FilterByIngredient(ctx, query)
			if err != nil {
				slog.WarnContext(ctx, "search: ingredient query failed", "query", query, "error", err)
				return nil
			}
			ingredientHits = hits
			return nil
		})
		_ = grp.Wait()

		for _, recipe := range nameHits {
			if _, ok := seen[recipe.ID]; ok {
				continue
			}
			seen[recipe.ID] = struct{}{}
			results = append(results, Result{Recipe: recipe, Match: MatchName})
		}

		// Ingredient hits are partial records; resolve each to full
		// detail. A name match takes tag priority and the recipe is
		// not duplicated.
		for _, recipe := range m.resolve(ctx, ingredientHits) {
			if _, ok := seen[recipe.ID]; ok {
				continue
			}
			seen[recipe.ID] = struct{}{}
			results = append(results, Result{Recipe: recipe, Match: MatchIngredient})
		}
	}

	results = m.appendFilterHits(ctx, results, seen, category, MatchCategory, m.catalog.FilterByCategory)
	results = m.appendFilterHits(ctx, results, seen, area, MatchArea, m.catalog.FilterByArea)

	return results
}

func (m *Merger) appendFilterHits(ctx context.Context, results []Result, seen map[string]struct{}, value string, match Match, query func(context.Context, string) ([]mealdb.Recipe, error)) []Result {
	if value == "" {
		return results
	}

	hits, err := query(ctx, value)
	if err != nil {
		slog.WarnContext(ctx, "search: filter query failed", "match", string(match), "value", value, "error", err)
		return results
	}

	for _, recipe := range m.resolve(ctx, hits) {
		if _, ok := seen[recipe.ID]; ok {
			continue
		}
		seen[recipe.ID] = struct{}{}
		results = append(results, Result{Recipe: recipe, Match: match})
	}
	return results
}

// resolve looks up full detail for each partial record, dropping any
// that fail or resolve to absent.
func (m *Merger) resolve(ctx context.Context, recipes []mealdb.Recipe) []mealdb.Recipe {
	resolved := make([]*mealdb.Recipe, len(recipes))
	var grp errgroup.Group
	for i, recipe := range recipes {
		grp.Go(func() error {
			full, err := m.catalog.LookupByID(ctx, recipe.ID)
			if err != nil {
				slog.WarnContext(ctx, "search: resolving recipe", "recipeId", recipe.ID, "error", err)
				return nil
			}
			resolved[i] = full
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

package discovery

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mealmuse/mealmuse-go/mealdb"
)

// fakeCatalog serves a small in-memory catalog. Letter queries return
// full records; category and area queries return partial records.
// Ghosts show up in letter queries but resolve to absent on lookup.
type fakeCatalog struct {
	mu      sync.Mutex
	recipes map[string]mealdb.Recipe
	ghosts  map[string]mealdb.Recipe

	failLetters bool
	failLookups bool
	lookups     int
}

func newFakeCatalog(n int) *fakeCatalog {
	c := &fakeCatalog{recipes: map[string]mealdb.Recipe{}, ghosts: map[string]mealdb.Recipe{}}
	categories := []string{"Beef", "Chicken", "Lamb", "Pasta", "Seafood", "Vegetarian", "Breakfast", "Dessert", "Miscellaneous"}
	areas := []string{"American", "British", "Chinese", "French", "Indian", "Italian", "Japanese", "Mexican", "Thai", "Turkish"}
	for i := range n {
		id := fmt.Sprintf("%d", 52700+i)
		c.recipes[id] = mealdb.Recipe{
			ID:       id,
			Name:     fmt.Sprintf("%crecipe %s", 'a'+byte(i%26), id),
			Category: categories[i%len(categories)],
			Area:     areas[i%len(areas)],
		}
	}
	return c
}

func partial(r mealdb.Recipe) mealdb.Recipe {
	return mealdb.Recipe{ID: r.ID, Name: r.Name, ThumbnailURL: r.ThumbnailURL}
}

// sortedByID keeps fake query results deterministic regardless of map
// iteration order.
func sortedByID(recipes []mealdb.Recipe) []mealdb.Recipe {
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID < recipes[j].ID })
	return recipes
}

func (c *fakeCatalog) SearchByFirstLetter(_ context.Context, letter string) ([]mealdb.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failLetters {
		return nil, errors.New("catalog unavailable")
	}
	var out []mealdb.Recipe
	for _, r := range c.recipes {
		if strings.HasPrefix(r.Name, letter) {
			out = append(out, r)
		}
	}
	for _, r := range c.ghosts {
		if strings.HasPrefix(r.Name, letter) {
			out = append(out, r)
		}
	}
	return sortedByID(out), nil
}

func (c *fakeCatalog) FilterByCategory(_ context.Context, category string) ([]mealdb.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []mealdb.Recipe
	for _, r := range c.recipes {
		if r.Category == category {
			out = append(out, partial(r))
		}
	}
	return sortedByID(out), nil
}

func (c *fakeCatalog) FilterByArea(_ context.Context, area string) ([]mealdb.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []mealdb.Recipe
	for _, r := range c.recipes {
		if r.Area == area {
			out = append(out, partial(r))
		}
	}
	return sortedByID(out), nil
}

func (c *fakeCatalog) LookupByID(_ context.Context, id string) (*mealdb.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups++
	if c.failLookups {
		return nil, errors.New("catalog unavailable")
	}
	r, ok := c.recipes[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func newTestSampler(catalog Source, seed uint64) *Sampler {
	return NewSampler(catalog, rand.New(rand.NewPCG(seed, 0)), DefaultPools())
}

func TestSample_CountAndDedupe(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(60)
	sampler := newTestSampler(catalog, 1)

	recipes := sampler.Sample(t.Context(), 12, nil)
	require.NotEmpty(t, recipes)
	require.LessOrEqual(t, len(recipes), 12)

	seen := map[string]bool{}
	for _, r := range recipes {
		require.False(t, seen[r.ID], "recipe %s returned twice", r.ID)
		seen[r.ID] = true
	}
}

func TestSample_ExclusionIsDisjoint(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(60)
	sampler := newTestSampler(catalog, 2)

	first := sampler.Sample(t.Context(), 6, nil)
	require.NotEmpty(t, first)

	exclude := make([]string, len(first))
	for i, r := range first {
		exclude[i] = r.ID
	}

	second := sampler.Sample(t.Context(), 6, exclude)
	for _, r := range second {
		require.NotContains(t, exclude, r.ID)
	}
}

func TestSample_BackfillsPartialRecords(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(60)
	sampler := newTestSampler(catalog, 3)

	recipes := sampler.Sample(t.Context(), 12, nil)
	require.NotEmpty(t, recipes)
	for _, r := range recipes {
		require.False(t, r.Partial(), "recipe %s not backfilled", r.ID)
	}
}

func TestSample_BackfillFailureKeepsPartial(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(60)
	catalog.failLetters = true // only partial-record strategies succeed
	catalog.failLookups = true
	sampler := newTestSampler(catalog, 4)

	recipes := sampler.Sample(t.Context(), 6, nil)
	require.NotEmpty(t, recipes)
	for _, r := range recipes {
		require.True(t, r.Partial())
	}
}

func TestSample_AbsentRecipeDropped(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(1)
	sampler := newTestSampler(catalog, 5)

	// Listed by letter queries, but gone on lookup.
	for letter := 'a'; letter <= 'z'; letter++ {
		id := "gone-" + string(letter)
		catalog.ghosts[id] = mealdb.Recipe{ID: id, Name: string(letter) + "vanished"}
	}

	recipes := sampler.Sample(t.Context(), 12, nil)
	for _, r := range recipes {
		require.NotContains(t, r.ID, "gone")
	}
}

func TestSample_DeterministicWithSeed(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(60)

	a := newTestSampler(catalog, 7).Sample(t.Context(), 12, nil)
	b := newTestSampler(catalog, 7).Sample(t.Context(), 12, nil)

	idsOf := func(recipes []mealdb.Recipe) []string {
		ids := make([]string, len(recipes))
		for i, r := range recipes {
			ids[i] = r.ID
		}
		return ids
	}
	require.Equal(t, idsOf(a), idsOf(b))
}

func TestSample_ZeroCount(t *testing.T) {
	t.Parallel()

	sampler := newTestSampler(newFakeCatalog(10), 8)
	require.Empty(t, sampler.Sample(t.Context(), 0, nil))
}

func TestSample_FailedStrategySkipped(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog(60)
	catalog.failLetters = true
	sampler := newTestSampler(catalog, 9)

	// The letter strategy fails; category and area strategies still
	// contribute whenever selected.
	for range 10 {
		recipes := sampler.Sample(t.Context(), 6, nil)
		for _, r := range recipes {
			require.NotEmpty(t, r.ID)
		}
	}
}

package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mealmuse/mealmuse-go/mealmusedb"
)

type stubSource struct {
	engagement []mealmusedb.Engagement
	comments   []mealmusedb.Comment
	scanErr    error
}

func (s *stubSource) ListEngagement(context.Context) ([]mealmusedb.Engagement, error) {
	return s.engagement, s.scanErr
}

func (s *stubSource) ListComments(context.Context) ([]mealmusedb.Comment, error) {
	return s.comments, s.scanErr
}

func TestMostEngaged_ScoresAndOrders(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		engagement: []mealmusedb.Engagement{
			{RecipeID: "quiet", Likes: nil},
			{RecipeID: "liked", Likes: []string{"u1", "u2"}},
			{RecipeID: "discussed", Likes: []string{"u1"}},
			{RecipeID: "popular", Likes: []string{"u1", "u2", "u3"}},
		},
		comments: []mealmusedb.Comment{
			{RecipeID: "discussed"},
			{RecipeID: "discussed"},
			{RecipeID: "popular"},
			{RecipeID: ""},
		},
	}
	agg := NewAggregator(src)

	ids := agg.MostEngaged(t.Context(), 10)
	// popular scores 4, discussed 3, liked 2; quiet scores 0 and is
	// never returned.
	require.Equal(t, []string{"popular", "discussed", "liked"}, ids)
}

func TestMostEngaged_TiesKeepScanOrder(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		engagement: []mealmusedb.Engagement{
			{RecipeID: "first", Likes: []string{"u1"}},
			{RecipeID: "second", Likes: []string{"u2"}},
			{RecipeID: "third", Likes: []string{"u3"}},
		},
	}
	agg := NewAggregator(src)

	require.Equal(t, []string{"first", "second", "third"}, agg.MostEngaged(t.Context(), 3))
}

func TestMostEngaged_Limit(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		engagement: []mealmusedb.Engagement{
			{RecipeID: "a", Likes: []string{"u1"}},
			{RecipeID: "b", Likes: []string{"u1", "u2"}},
			{RecipeID: "c", Likes: []string{"u1", "u2", "u3"}},
		},
	}
	agg := NewAggregator(src)

	require.Equal(t, []string{"c", "b"}, agg.MostEngaged(t.Context(), 2))
	require.Empty(t, agg.MostEngaged(t.Context(), 0))
}

func TestMostEngaged_ScanFailureIsEmpty(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(&stubSource{scanErr: errors.New("unavailable")})
	require.Empty(t, agg.MostEngaged(t.Context(), 5))
}

func TestMostLiked_IgnoresComments(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		engagement: []mealmusedb.Engagement{
			{RecipeID: "liked", Likes: []string{"u1"}},
			{RecipeID: "discussed", Likes: nil},
		},
		comments: []mealmusedb.Comment{
			{RecipeID: "discussed"},
			{RecipeID: "discussed"},
		},
	}
	agg := NewAggregator(src)

	require.Equal(t, []string{"liked"}, agg.MostLiked(t.Context(), 5))
}

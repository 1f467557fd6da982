package mealmusedb

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateCommentBody(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateCommentBody("looks delicious"))
	require.NoError(t, ValidateCommentBody(strings.Repeat("a", MaxCommentLength)))
	// Multi-byte runes count as single characters.
	require.NoError(t, ValidateCommentBody(strings.Repeat("é", MaxCommentLength)))

	require.ErrorIs(t, ValidateCommentBody(""), ErrEmptyComment)
	require.ErrorIs(t, ValidateCommentBody(strings.Repeat("a", MaxCommentLength+1)), ErrCommentTooLong)
}

func TestSortCommentsNewestFirst(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	comments := []Comment{
		{ID: "c1", CreatedAt: base},
		{ID: "c3", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "c2", CreatedAt: base.Add(time.Hour)},
		{ID: "c2b", CreatedAt: base.Add(time.Hour)},
	}

	SortCommentsNewestFirst(comments)

	ids := make([]string, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	// Equal timestamps keep their relative order.
	require.Equal(t, []string{"c3", "c2", "c2b", "c1"}, ids)
}

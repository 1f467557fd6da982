package identity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Ada", User{UID: "u1", DisplayName: "Ada", Email: "ada@example.com"}.DisplayLabel())
	require.Equal(t, "ada@example.com", User{UID: "u1", Email: "ada@example.com"}.DisplayLabel())
}

func TestUserContext(t *testing.T) {
	t.Parallel()

	_, ok := FromContext(t.Context())
	require.False(t, ok)

	ctx := WithUser(t.Context(), User{UID: "u1", DisplayName: "Ada"})
	user, ok := FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "u1", user.UID)
}

// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

package mealmusedb

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Preferences are a user's display preferences.
type Preferences struct {
	// ServingSize scales displayed ingredient quantities.
	ServingSize int `firestore:"servingSize"`

	// Theme is the UI theme name, "light" or "dark".
	Theme string `firestore:"theme"`

	// Notifications reports whether the user wants notifications.
	Notifications bool `firestore:"notifications"`
}

// DefaultPreferences returns the preferences assumed for a user who
// has never saved any.
func DefaultPreferences() Preferences {
	return Preferences{
		ServingSize:   1,
		Theme:         "light",
		Notifications: true,
	}
}

// UserPreferences returns the user's preferences. A missing document
// or a failed read yields the defaults.
func (s *Store) UserPreferences(ctx context.Context, userID string) Preferences {
	snap, err := s.client.Collection(collectionUsers).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			slog.WarnContext(ctx, "mealmusedb: getting preferences", "userId", userID, "error", err)
		}
		return DefaultPreferences()
	}

	var user userDoc
	if err := snap.DataTo(&user); err != nil {
		slog.WarnContext(ctx, "mealmusedb: decoding preferences", "userId", userID, "error", err)
		return DefaultPreferences()
	}
	if user.Preferences == (Preferences{}) {
		return DefaultPreferences()
	}
	return user.Preferences
}

// SavePreferences replaces the user's preferences, merging at the user
// document level so the planner is untouched.
func (s *Store) SavePreferences(ctx context.Context, userID string, prefs Preferences) error {
	doc := s.client.Collection(collectionUsers).Doc(userID)
	if _, err := doc.Set(ctx, map[string]any{"preferences": prefs}, firestore.MergeAll); err != nil {
		return fmt.Errorf("mealmusedb: saving preferences: %w", err)
	}
	return nil
}

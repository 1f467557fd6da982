// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

package mealmusedb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Engagement is the per-recipe engagement document in the recipes
// collection. An engagement document is created lazily by the first
// like and never deleted.
type Engagement struct {
	// RecipeID is the catalog identifier of the recipe. It is the
	// document ID, not a stored field.
	RecipeID string `firestore:"-"`

	// Likes are the IDs of users who liked the recipe. A user ID
	// appears at most once.
	Likes []string `firestore:"likes"`
}

// Likers returns the IDs of users who liked the recipe. A missing
// document or a failed read yields an empty set.
func (s *Store) Likers(ctx context.Context, recipeID string) []string {
	snap, err := s.client.Collection(collectionRecipes).Doc(recipeID).Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			slog.WarnContext(ctx, "mealmusedb: getting likers", "recipeId", recipeID, "error", err)
		}
		return nil
	}

	var rec Engagement
	if err := snap.DataTo(&rec); err != nil {
		slog.WarnContext(ctx, "mealmusedb: decoding engagement", "recipeId", recipeID, "error", err)
		return nil
	}
	return rec.Likes
}

// ToggleLike flips the like state of the recipe for the user and
// returns the new state. The engagement document is created with the
// like when missing.
//
// The toggle is a read-then-write, not a transaction: two sessions
// toggling at once race and the last write wins.
func (s *Store) ToggleLike(ctx context.Context, recipeID, userID string) (bool, error) {
	doc := s.client.Collection(collectionRecipes).Doc(recipeID)

	snap, err := doc.Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			return false, fmt.Errorf("mealmusedb: getting engagement for like: %w", err)
		}
		if _, err := doc.Set(ctx, Engagement{Likes: []string{userID}}); err != nil {
			return false, fmt.Errorf("mealmusedb: creating engagement with like: %w", err)
		}
		return true, nil
	}

	var rec Engagement
	if err := snap.DataTo(&rec); err != nil {
		return false, fmt.Errorf("mealmusedb: decoding engagement for like: %w", err)
	}

	liked := slices.Contains(rec.Likes, userID)
	update := firestore.Update{Path: "likes", Value: firestore.ArrayUnion(userID)}
	if liked {
		update = firestore.Update{Path: "likes", Value: firestore.ArrayRemove(userID)}
	}
	if _, err := doc.Update(ctx, []firestore.Update{update}); err != nil {
		return false, fmt.Errorf("mealmusedb: updating likes: %w", err)
	}
	return !liked, nil
}

// LikedRecipeIDs returns the IDs of recipes the user has liked. A
// failed read yields an empty list.
func (s *Store) LikedRecipeIDs(ctx context.Context, userID string) []string {
	iter := s.client.Collection(collectionRecipes).
		Where("likes", "array-contains", userID).
		Documents(ctx)
	defer iter.Stop()

	var ids []string
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			slog.WarnContext(ctx, "mealmusedb: listing liked recipes", "userId", userID, "error", err)
			return nil
		}
		ids = append(ids, doc.Ref.ID)
	}
	return ids
}

// ListEngagement returns every engagement document, a full collection
// scan feeding the ranking aggregation.
func (s *Store) ListEngagement(ctx context.Context) ([]Engagement, error) {
	docs, err := s.client.Collection(collectionRecipes).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("mealmusedb: scanning engagement: %w", err)
	}

	records := make([]Engagement, 0, len(docs))
	for _, doc := range docs {
		var rec Engagement
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("mealmusedb: decoding engagement %s: %w", doc.Ref.ID, err)
		}
		rec.RecipeID = doc.Ref.ID
		records = append(records, rec)
	}
	return records, nil
}

// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

package mealmusedb

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Days are the day names a planner document may key on.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// MealSlots are the meal slot names within a planner day.
var MealSlots = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

// RecipeRef is the planner's lightweight reference to a catalog recipe.
type RecipeRef struct {
	// ID is the catalog identifier of the recipe.
	ID string `firestore:"id"`

	// Name is the display name of the recipe.
	Name string `firestore:"name"`

	// ImageURL is the URL of the recipe's thumbnail image.
	ImageURL string `firestore:"img"`
}

// PlannerDocument is a user's weekly meal plan: day name to meal slot
// to planned recipe. Saving overwrites the whole plan, last write wins.
type PlannerDocument map[string]map[string]RecipeRef

// Validate rejects planner documents with unknown day or meal slot
// names.
func (p PlannerDocument) Validate() error {
	for day, meals := range p {
		if !slices.Contains(Days, day) {
			return fmt.Errorf("mealmusedb: unknown planner day %q", day)
		}
		for slot := range meals {
			if !slices.Contains(MealSlots, slot) {
				return fmt.Errorf("mealmusedb: unknown meal slot %q", slot)
			}
		}
	}
	return nil
}

// Set plans a recipe for the given day and meal slot.
func (p PlannerDocument) Set(day, slot string, ref RecipeRef) error {
	if !slices.Contains(Days, day) {
		return fmt.Errorf("mealmusedb: unknown planner day %q", day)
	}
	if !slices.Contains(MealSlots, slot) {
		return fmt.Errorf("mealmusedb: unknown meal slot %q", slot)
	}
	if p[day] == nil {
		p[day] = map[string]RecipeRef{}
	}
	p[day][slot] = ref
	return nil
}

// Remove clears the given day and meal slot, dropping the day entirely
// once its last slot is removed.
func (p PlannerDocument) Remove(day, slot string) {
	meals, ok := p[day]
	if !ok {
		return
	}
	delete(meals, slot)
	if len(meals) == 0 {
		delete(p, day)
	}
}

type userDoc struct {
	Planner     PlannerDocument `firestore:"planner"`
	Preferences Preferences     `firestore:"preferences"`
}

// Planner returns the user's planner document. A missing document or a
// failed read yields an empty plan.
func (s *Store) Planner(ctx context.Context, userID string) PlannerDocument {
	snap, err := s.client.Collection(collectionUsers).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			slog.WarnContext(ctx, "mealmusedb: getting planner", "userId", userID, "error", err)
		}
		return PlannerDocument{}
	}

	var user userDoc
	if err := snap.DataTo(&user); err != nil {
		slog.WarnContext(ctx, "mealmusedb: decoding planner", "userId", userID, "error", err)
		return PlannerDocument{}
	}
	if user.Planner == nil {
		return PlannerDocument{}
	}
	return user.Planner
}

// SavePlanner replaces the user's planner document. The user document
// itself is merged, so preferences and other fields are untouched.
func (s *Store) SavePlanner(ctx context.Context, userID string, planner PlannerDocument) error {
	if err := planner.Validate(); err != nil {
		return err
	}

	doc := s.client.Collection(collectionUsers).Doc(userID)
	if _, err := doc.Set(ctx, map[string]any{"planner": planner}, firestore.MergeAll); err != nil {
		return fmt.Errorf("mealmusedb: saving planner: %w", err)
	}
	return nil
}

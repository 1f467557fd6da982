// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

package mealdb

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// The catalog schema carries exactly twenty ingredient/measure slots.
const maxIngredients = 20

// Ingredient is one ordered (ingredient, measure) pair from a recipe.
type Ingredient struct {
	// Name is the name of the ingredient.
	Name string

	// Measure is the quantity of the ingredient as free-form text.
	Measure string
}

// Recipe is a single recipe from the catalog. Filter endpoints return
// partial records carrying only ID, Name, and ThumbnailURL.
type Recipe struct {
	// ID is the catalog identifier of the recipe.
	ID string

	// Name is the display name of the recipe.
	Name string

	// ThumbnailURL is the URL of the recipe's thumbnail image.
	ThumbnailURL string

	// Category is the category of the recipe, e.g. "Seafood".
	// Empty on partial records.
	Category string

	// Area is the cuisine of the recipe, e.g. "Italian".
	// Empty on partial records.
	Area string

	// Instructions is the free-form preparation text.
	Instructions string

	// Ingredients are the ordered ingredient pairs of the recipe,
	// with empty catalog slots dropped.
	Ingredients []Ingredient
}

// Partial reports whether the recipe is missing detail fields that a
// lookup by ID would fill in.
func (r *Recipe) Partial() bool {
	return r.Category == "" || r.Area == ""
}

// UnmarshalJSON decodes the catalog's flat meal object, folding the
// numbered strIngredientN/strMeasureN slots into ordered pairs.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var fields map[string]*string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	str := func(key string) string {
		if v := fields[key]; v != nil {
			return strings.TrimSpace(*v)
		}
		return ""
	}

	r.ID = str("idMeal")
	r.Name = str("strMeal")
	r.ThumbnailURL = str("strMealThumb")
	r.Category = str("strCategory")
	r.Area = str("strArea")
	r.Instructions = str("strInstructions")
	r.Ingredients = nil
	for i := 1; i <= maxIngredients; i++ {
		name := str("strIngredient" + strconv.Itoa(i))
		if name == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, Ingredient{
			Name:    name,
			Measure: str("strMeasure" + strconv.Itoa(i)),
		})
	}
	return nil
}

// Category is a recipe category from the catalog.
type Category struct {
	// ID is the catalog identifier of the category.
	ID string `json:"idCategory"`

	// Name is the name of the category.
	Name string `json:"strCategory"`

	// ThumbnailURL is the URL of the category's thumbnail image.
	ThumbnailURL string `json:"strCategoryThumb"`

	// Description is the free-form description of the category.
	Description string `json:"strCategoryDescription"`
}

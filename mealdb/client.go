// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

// Package mealdb is a typed read-only client for a TheMealDB-style
// recipe catalog API. All operations are a single unauthenticated GET
// round trip with no retry; the catalog's "meals": null convention is
// normalized to empty results.
package mealdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
)

// DefaultBaseURL is the public TheMealDB API endpoint.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1/"

// NewClient returns a Client backed by the given HTTP client and API
// base URL. Pass DefaultBaseURL for the public catalog.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
	}
}

// Client is a catalog API client.
type Client struct {
	http    *http.Client
	baseURL string
}

type mealsEnvelope struct {
	Meals []Recipe `json:"meals"`
}

type categoriesEnvelope struct {
	Categories []Category `json:"categories"`
}

// LookupByID returns the full recipe with the given ID, or nil if the
// catalog has no such recipe.
func (c *Client) LookupByID(ctx context.Context, id string) (*Recipe, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "lookup.php", url.Values{"i": {id}}, &env); err != nil {
		return nil, err
	}
	if len(env.Meals) == 0 {
		return nil, nil
	}
	return &env.Meals[0], nil
}

// SearchByName returns full recipes whose name matches the query.
func (c *Client) SearchByName(ctx context.Context, query string) ([]Recipe, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "search.php", url.Values{"s": {query}}, &env); err != nil {
		return nil, err
	}
	return env.Meals, nil
}

// SearchByFirstLetter returns full recipes whose name starts with the
// given letter.
func (c *Client) SearchByFirstLetter(ctx context.Context, letter string) ([]Recipe, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "search.php", url.Values{"f": {letter}}, &env); err != nil {
		return nil, err
	}
	return env.Meals, nil
}

// FilterByIngredient returns partial recipes using the given ingredient.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]Recipe, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "filter.php", url.Values{"i": {ingredient}}, &env); err != nil {
		return nil, err
	}
	return env.Meals, nil
}

// FilterByCategory returns partial recipes in the given category.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]Recipe, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "filter.php", url.Values{"c": {category}}, &env); err != nil {
		return nil, err
	}
	return env.Meals, nil
}

// FilterByArea returns partial recipes from the given cuisine area.
func (c *Client) FilterByArea(ctx context.Context, area string) ([]Recipe, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "filter.php", url.Values{"a": {area}}, &env); err != nil {
		return nil, err
	}
	return env.Meals, nil
}

// ListCategories returns every recipe category in the catalog.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var env categoriesEnvelope
	if err := c.get(ctx, "categories.php", nil, &env); err != nil {
		return nil, err
	}
	return env.Categories, nil
}

// ListAreas returns the name of every cuisine area in the catalog.
func (c *Client) ListAreas(ctx context.Context) ([]string, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "list.php", url.Values{"a": {"list"}}, &env); err != nil {
		return nil, err
	}
	areas := make([]string, 0, len(env.Meals))
	for _, meal := range env.Meals {
		if meal.Area != "" {
			areas = append(areas, meal.Area)
		}
	}
	return areas, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("mealdb: creating request for %s: %w", endpoint, err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mealdb: fetching %s: %w", endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("mealdb: unexpected status %d fetching %s", res.StatusCode, endpoint)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("mealdb: reading %s response: %w", endpoint, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("mealdb: decoding %s response: %w", endpoint, err)
	}
	return nil
}

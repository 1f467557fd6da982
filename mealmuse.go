// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

// Package mealmuse wires the MealMuse client SDK together: the recipe
// catalog client, the Firestore engagement store, and the discovery,
// ranking, search, and feed components built on top of them. Embedding
// applications construct an App once and hand identity into operations
// explicitly.
package mealmuse

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"

	"github.com/mealmuse/mealmuse-go/config"
	"github.com/mealmuse/mealmuse-go/discovery"
	"github.com/mealmuse/mealmuse-go/feed"
	"github.com/mealmuse/mealmuse-go/identity"
	"github.com/mealmuse/mealmuse-go/mealdb"
	"github.com/mealmuse/mealmuse-go/mealmusedb"
	"github.com/mealmuse/mealmuse-go/ranking"
	"github.com/mealmuse/mealmuse-go/search"
)

// App bundles the constructed SDK components. Every component holds
// explicitly injected clients; nothing reads global state.
type App struct {
	// Catalog is the recipe catalog client.
	Catalog *mealdb.Client

	// Store is the engagement document store.
	Store *mealmusedb.Store

	// Sampler produces randomized discovery samples.
	Sampler *discovery.Sampler

	// Ranker computes engagement rankings.
	Ranker *ranking.Aggregator

	// Merger runs merged catalog searches.
	Merger *search.Merger

	// Feed builds home feed pages.
	Feed *feed.Feed

	// Identity resolves provider ID tokens to users.
	Identity *identity.Provider

	firestore *firestore.Client
}

// New constructs the SDK from the given configuration.
func New(ctx context.Context, conf *config.Config) (*App, error) {
	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return nil, fmt.Errorf("mealmuse: creating firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("mealmuse: creating firebase auth client: %w", err)
	}

	store, err := fbApp.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("mealmuse: creating firestore client: %w", err)
	}

	catalog := mealdb.NewClient(&http.Client{}, conf.Catalog.BaseURL)
	engagement := mealmusedb.NewStore(store)
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	sampler := discovery.NewSampler(catalog, rng, conf.Pools())
	ranker := ranking.NewAggregator(engagement)

	return &App{
		Catalog:   catalog,
		Store:     engagement,
		Sampler:   sampler,
		Ranker:    ranker,
		Merger:    search.NewMerger(catalog),
		Feed:      feed.New(ranker, sampler, catalog, rng, conf.FeedOptions()),
		Identity:  identity.NewProvider(fbAuth),
		firestore: store,
	}, nil
}

// Close releases the underlying clients.
func (a *App) Close() error {
	if err := a.firestore.Close(); err != nil {
		return fmt.Errorf("mealmuse: closing firestore client: %w", err)
	}
	return nil
}

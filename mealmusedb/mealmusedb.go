// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

// Package mealmusedb holds the Firestore document model for MealMuse
// engagement data and the accessors that read and write it.
//
// Accessor methods come in two categories. Reads are best-effort: a
// failure is logged and a safe empty value returned, so a degraded
// store degrades the view instead of failing it. Writes are triggered
// directly by a user action and surface their error to the caller.
package mealmusedb

import (
	"cloud.google.com/go/firestore"
)

const (
	// collectionRecipes holds one engagement document per recipe ID.
	collectionRecipes = "recipes"
	// collectionComments holds one document per comment.
	collectionComments = "comments"
	// collectionUsers holds one document per user ID.
	collectionUsers = "users"
)

// NewStore returns a Store backed by the given Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{
		client: client,
	}
}

// Store reads and writes MealMuse engagement documents.
type Store struct {
	client *firestore.Client
}

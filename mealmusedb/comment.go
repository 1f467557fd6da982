// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

package mealmusedb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"
	"unicode/utf8"
)

// MaxCommentLength is the maximum comment body length in characters.
const MaxCommentLength = 500

var (
	// ErrEmptyComment is returned when a comment body is empty.
	ErrEmptyComment = errors.New("mealmusedb: comment body is empty")
	// ErrCommentTooLong is returned when a comment body exceeds
	// MaxCommentLength characters.
	ErrCommentTooLong = errors.New("mealmusedb: comment body too long")
)

// Comment is a single comment on a recipe. Comments are append-only.
type Comment struct {
	// ID is the Firestore document ID of the comment.
	ID string `firestore:"-"`

	// RecipeID is the catalog identifier of the commented recipe.
	// The reference is not enforced against the catalog.
	RecipeID string `firestore:"recipeId"`

	// Author is the display name shown with the comment.
	Author string `firestore:"user"`

	// AuthorID is the user ID of the comment author.
	AuthorID string `firestore:"userId"`

	// Body is the comment text, at most MaxCommentLength characters.
	Body string `firestore:"comment"`

	// CreatedAt is assigned by the store at write time.
	CreatedAt time.Time `firestore:"timestamp,serverTimestamp"`
}

// ValidateCommentBody reports whether a comment body is storable.
func ValidateCommentBody(body string) error {
	if body == "" {
		return ErrEmptyComment
	}
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}

// SortCommentsNewestFirst orders comments descending by creation time.
// Comments with equal timestamps keep their relative order.
func SortCommentsNewestFirst(comments []Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
}

// Comments returns the comments on a recipe, newest first. A failed
// read yields an empty list.
func (s *Store) Comments(ctx context.Context, recipeID string) []Comment {
	docs, err := s.client.Collection(collectionComments).
		Where("recipeId", "==", recipeID).
		Documents(ctx).GetAll()
	if err != nil {
		slog.WarnContext(ctx, "mealmusedb: getting comments", "recipeId", recipeID, "error", err)
		return nil
	}

	comments := make([]Comment, 0, len(docs))
	for _, doc := range docs {
		var comment Comment
		if err := doc.DataTo(&comment); err != nil {
			slog.WarnContext(ctx, "mealmusedb: decoding comment", "commentId", doc.Ref.ID, "error", err)
			continue
		}
		comment.ID = doc.Ref.ID
		comments = append(comments, comment)
	}

	SortCommentsNewestFirst(comments)
	return comments
}

// AddComment appends a comment to a recipe. The store assigns the
// creation timestamp; the returned comment carries the local time as
// an approximation of it.
func (s *Store) AddComment(ctx context.Context, recipeID, author, authorID, body string) (Comment, error) {
	if err := ValidateCommentBody(body); err != nil {
		return Comment{}, err
	}

	comment := Comment{
		RecipeID: recipeID,
		Author:   author,
		AuthorID: authorID,
		Body:     body,
	}
	doc := s.client.Collection(collectionComments).NewDoc()
	if _, err := doc.Create(ctx, comment); err != nil {
		return Comment{}, fmt.Errorf("mealmusedb: adding comment: %w", err)
	}

	comment.ID = doc.ID
	comment.CreatedAt = time.Now()
	return comment, nil
}

// ListComments returns every comment, a full collection scan feeding
// the ranking aggregation.
func (s *Store) ListComments(ctx context.Context) ([]Comment, error) {
	docs, err := s.client.Collection(collectionComments).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("mealmusedb: scanning comments: %w", err)
	}

	comments := make([]Comment, 0, len(docs))
	for _, doc := range docs {
		var comment Comment
		if err := doc.DataTo(&comment); err != nil {
			return nil, fmt.Errorf("mealmusedb: decoding comment %s: %w", doc.Ref.ID, err)
		}
		comment.ID = doc.Ref.ID
		comments = append(comments, comment)
	}
	return comments, nil
}

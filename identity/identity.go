// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

// Package identity consumes the identity values produced by the
// external sign-in provider. The sign-in and sign-out protocol itself
// lives outside this module; callers pass the resulting user into
// operations explicitly rather than reading ambient session state.
package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// User is the signed-in user as seen by this module.
type User struct {
	// UID is the provider-assigned user ID.
	UID string

	// DisplayName is the user's display name, possibly empty.
	DisplayName string

	// Email is the user's email address.
	Email string
}

// DisplayLabel is the name to show with user content, falling back to
// the email address when no display name is set.
func (u User) DisplayLabel() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// NewProvider returns a Provider verifying identities with the given
// Firebase auth client.
func NewProvider(authClient *auth.Client) *Provider {
	return &Provider{
		auth: authClient,
	}
}

// Provider resolves provider-issued ID tokens to users.
type Provider struct {
	auth *auth.Client
}

// UserFromIDToken verifies an ID token and returns the user it
// identifies.
func (p *Provider) UserFromIDToken(ctx context.Context, idToken string) (User, error) {
	tok, err := p.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return User{}, fmt.Errorf("identity: verifying ID token: %w", err)
	}

	rec, err := p.auth.GetUser(ctx, tok.UID)
	if err != nil {
		return User{}, fmt.Errorf("identity: getting user %s: %w", tok.UID, err)
	}

	return User{
		UID:         rec.UID,
		DisplayName: rec.DisplayName,
		Email:       rec.Email,
	}, nil
}

type userContextKey struct{}

var userContextKeyInstance = userContextKey{}

// WithUser returns a context carrying the signed-in user.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userContextKeyInstance, user)
}

// FromContext returns the signed-in user from the context, if any.
func FromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userContextKeyInstance).(User)
	return user, ok
}

// Package firebaseauth wraps the Firebase Admin SDK for the one thing
// this service needs from it: disabling the auth user behind a
// suspended account.
package firebaseauth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type Client struct {
	auth *auth.Client
}

// New initializes the Firebase Admin SDK from a service account file.
func New(ctx context.Context, serviceAccountPath string) (*Client, error) {
	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	return &Client{auth: authClient}, nil
}

// DisableAccount marks the auth user disabled so existing sessions are
// cut off. Safe to call repeatedly on the same uid.
func (c *Client) DisableAccount(ctx context.Context, uid string) error {
	update := (&auth.UserToUpdate{}).Disabled(true)
	if _, err := c.auth.UpdateUser(ctx, uid, update); err != nil {
		return fmt.Errorf("error disabling user %s: %w", uid, err)
	}
	return nil
}

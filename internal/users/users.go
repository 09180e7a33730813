package users

import (
	"context"
	"fmt"

	"github.com/avaldes/blogboard/internal/model"
	"github.com/avaldes/blogboard/internal/store"
)

// ErrNoUsers is returned when the directory holds no users at all.
var ErrNoUsers = fmt.Errorf("no users available")

// Directory resolves users from the remote store's users collection.
type Directory struct {
	client *store.Client
}

// NewDirectory creates a directory backed by the given store client.
func NewDirectory(client *store.Client) *Directory {
	return &Directory{client: client}
}

// FindCredential looks up a user by exact username and password match.
// Returns (nil, nil) when no user matches. If the store holds duplicate
// usernames the first record in store order wins.
func (d *Directory) FindCredential(ctx context.Context, username, password string) (*model.User, error) {
	var matches []model.User

	filter := map[string]string{
		"username": username,
		"password": password,
	}
	if err := d.client.Fetch(ctx, "users", filter, &matches); err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, nil
	}

	return &matches[0], nil
}

// List returns every user in the directory, in store order.
func (d *Directory) List(ctx context.Context) ([]model.User, error) {
	var all []model.User
	if err := d.client.Fetch(ctx, "users", nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// ResolveDefaultActiveUser picks the session's default identity: the user
// whose username equals defaultUsername when present, otherwise the first
// user the store returns. The fallback-to-first rule is deliberate and must
// stay as is.
func (d *Directory) ResolveDefaultActiveUser(ctx context.Context, defaultUsername string) (*model.User, error) {
	all, err := d.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(all) == 0 {
		return nil, ErrNoUsers
	}

	return SelectDefault(all, defaultUsername), nil
}

// SelectDefault applies the default-identity rule to an already loaded
// roster: prefer the user named defaultUsername, fall back to the first
// entry. Returns nil for an empty roster.
func SelectDefault(all []model.User, defaultUsername string) *model.User {
	if len(all) == 0 {
		return nil
	}

	for i := range all {
		if all[i].Username == defaultUsername {
			return &all[i]
		}
	}

	return &all[0]
}

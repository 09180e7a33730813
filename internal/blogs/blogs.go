package blogs

import (
	"context"

	"github.com/avaldes/blogboard/internal/model"
	"github.com/avaldes/blogboard/internal/store"
)

// Catalog exposes the remote store's blogs collection.
type Catalog struct {
	client *store.Client
}

// NewCatalog creates a catalog backed by the given store client.
func NewCatalog(client *store.Client) *Catalog {
	return &Catalog{client: client}
}

// ListAll returns every blog known to the store, in store order. No sorting
// or filtering happens here.
func (c *Catalog) ListAll(ctx context.Context) ([]model.Blog, error) {
	var all []model.Blog
	if err := c.client.Fetch(ctx, "blogs", nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// GetByID returns the blog with the given id, or (nil, nil) when no blog
// matches. Absence is "post not found", not an error.
func (c *Catalog) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	var matches []model.Blog
	if err := c.client.Fetch(ctx, "blogs", map[string]string{"id": id}, &matches); err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, nil
	}

	return &matches[0], nil
}

package cacfp

import "context"

// Source loads the reference data behind a Catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

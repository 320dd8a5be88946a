// Package datasource reads the static dataset documents the atlas is built
// from. A Source knows nothing about their content.
package datasource

import (
	"context"
)

// Source fetches the raw bytes of a dataset document by relative path.
type Source interface {
	Name() string
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Pinger is implemented by sources that can report reachability without
// fetching a document.
type Pinger interface {
	Ping(ctx context.Context) error
}

//Personal.AI order the ending

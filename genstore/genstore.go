// Package genstore keeps the generation counter of each seed corpus
// namespace.
//
// Every corpus entry is framed with the generation that was current when it
// was written. Bumping the generation invalidates all of them at once; stale
// entries are dropped lazily the next time they are read.
package genstore

import "context"

// GenStore maps corpus namespaces to generations.
// Use Local for a corpus private to one process, or Redis when several
// fuzzing workers share a corpus.
type GenStore interface {
	// Generation returns the namespace's current generation; unknown => 0.
	Generation(ctx context.Context, ns string) (uint64, error)
	// Generations reads several namespaces at once; unknown => 0.
	Generations(ctx context.Context, ns []string) (map[string]uint64, error)
	// Bump atomically increments the namespace's generation and returns it.
	Bump(ctx context.Context, ns string) (uint64, error)
	// Close releases resources owned by the store.
	Close(context.Context) error
}

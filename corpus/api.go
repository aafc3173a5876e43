// Package corpus stores fuzz seeds: raw input bytes that an arbitrary.Codec
// materializes into values. Seeds live in a provider.Provider under a
// namespace, are addressed by content ID, and can be exported as a Go
// fuzzing corpus directory (testdata/fuzz/<FuzzName>).
//
// Every entry is framed with the namespace generation it was written under.
// Reset bumps the generation; entries from older generations, and entries
// that fail frame validation or decompression, are deleted when read and
// reported as misses.
package corpus

import (
	"context"
	"time"

	"github.com/unkn0wn-root/arbitrary"
	"github.com/unkn0wn-root/arbitrary/genstore"
	"github.com/unkn0wn-root/arbitrary/provider"
)

// Corpus is a namespaced seed store for values of type V.
type Corpus[V any] interface {
	// Add encodes v and stores the bytes. It returns the seed's content ID.
	Add(ctx context.Context, v V) (string, error)
	// AddRaw stores data as is. Any byte string is a valid seed.
	AddRaw(ctx context.Context, data []byte) (string, error)

	// Get materializes the seed with the corpus codec and config.
	Get(ctx context.Context, id string) (V, bool, error)
	// GetRaw returns the stored bytes.
	GetRaw(ctx context.Context, id string) ([]byte, bool, error)

	// IDs lists live seed IDs in ascending order.
	IDs(ctx context.Context) ([]string, error)
	// Remove deletes one seed.
	Remove(ctx context.Context, id string) error
	// Reset invalidates every seed of the namespace.
	Reset(ctx context.Context) error

	// ExportGoFuzz writes each seed to dir in the "go test fuzz v1" file
	// format, named by ID. It returns the number of files written.
	ExportGoFuzz(ctx context.Context, dir string) (int, error)

	Close(ctx context.Context) error
}

// Compression selects the payload compression for stored seeds.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd             // klauspost/compress/zstd
	CompressionLZ4              // pierrec/lz4 frames
)

type Options[V any] struct {
	Namespace string             // required
	Provider  provider.Provider  // required
	Codec     arbitrary.Codec[V] // required
	Config    *arbitrary.Config  // decode bounds and hooks for Get; nil = defaults
	GenStore  genstore.GenStore  // nil = in-process generations
	Logger    arbitrary.Logger   // nil = NopLogger

	// TTL applies to seed and index entries. 0 keeps them until Reset.
	TTL time.Duration

	// Compression applies to seed payloads of at least MinCompressSize
	// bytes (default 256). Smaller seeds are stored uncompressed.
	Compression     Compression
	MinCompressSize int

	// MaxSeedSize rejects larger seeds on Add and caps decompressed size on
	// read. Default 1 MiB.
	MaxSeedSize int
}

func New[V any](opts Options[V]) (Corpus[V], error) {
	c, err := newCorpus(opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

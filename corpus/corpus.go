package corpus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/unkn0wn-root/arbitrary"
	"github.com/unkn0wn-root/arbitrary/genstore"
	"github.com/unkn0wn-root/arbitrary/internal/util"
	"github.com/unkn0wn-root/arbitrary/internal/wire"
	"github.com/unkn0wn-root/arbitrary/provider"
)

// indexCodec encodes the ID list with the protocol itself.
var indexCodec = arbitrary.Slice(arbitrary.String)

type corpus[V any] struct {
	ns          string
	provider    provider.Provider
	gen         genstore.GenStore
	codec       arbitrary.Codec[V]
	cfg         *arbitrary.Config
	log         arbitrary.Logger
	ttl         time.Duration
	compression Compression
	minCompress int
	maxSeed     int
	comp        *compressor

	// mu serializes index read-modify-write within the process. Writers in
	// other processes can still race; a lost index update leaves a seed that
	// is readable by ID but not listed until it is added again.
	mu sync.Mutex
}

func newCorpus[V any](opts Options[V]) (*corpus[V], error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("corpus: provider is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("corpus: codec is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("corpus: namespace is required")
	}

	c := &corpus[V]{
		ns:          opts.Namespace,
		provider:    opts.Provider,
		codec:       opts.Codec,
		cfg:         opts.Config,
		ttl:         opts.TTL,
		compression: opts.Compression,
	}
	c.log = coalesce[arbitrary.Logger](opts.Logger, arbitrary.NopLogger{})
	c.minCompress = coalesce(opts.MinCompressSize, defaultMinCompressSize)
	c.maxSeed = coalesce(opts.MaxSeedSize, defaultMaxSeedSize)
	if opts.GenStore != nil {
		c.gen = opts.GenStore
	} else {
		c.gen = genstore.NewLocal()
	}

	comp, err := newCompressor(c.maxSeed)
	if err != nil {
		return nil, fmt.Errorf("corpus: compressor: %w", err)
	}
	c.comp = comp
	return c, nil
}

func (c *corpus[V]) Close(ctx context.Context) error {
	c.comp.close()
	if c.gen != nil {
		_ = c.gen.Close(ctx)
	}
	if c.provider != nil {
		return c.provider.Close(ctx)
	}
	return nil
}

func (c *corpus[V]) Add(ctx context.Context, v V) (string, error) {
	return c.AddRaw(ctx, arbitrary.Encode(c.codec, v))
}

func (c *corpus[V]) AddRaw(ctx context.Context, data []byte) (string, error) {
	if len(data) > c.maxSeed {
		return "", fmt.Errorf("%w: %d > %d", ErrSeedTooLarge, len(data), c.maxSeed)
	}
	gen, err := c.gen.Generation(ctx, c.ns)
	if err != nil {
		return "", fmt.Errorf("corpus: generation: %w", err)
	}

	payload, flag := data, wire.FlagNone
	if len(data) >= c.minCompress {
		payload, flag, err = c.comp.pack(c.compression, data)
		if err != nil {
			return "", err
		}
	}

	id := util.EntryID(data)
	k := util.SeedKey(c.ns, id)
	b := wire.EncodeEntry(wire.Entry{Kind: wire.KindSeed, Flags: flag, Gen: gen, Payload: payload})
	ok, err := c.provider.Set(ctx, k, b, int64(len(b)), c.ttl)
	if err != nil {
		return "", err
	}
	if !ok {
		c.log.Debug("seed rejected by provider (pressure)", arbitrary.Fields{"ns": c.ns, "id": id})
		return "", ErrRejected
	}

	if err := c.updateIndex(ctx, gen, func(ids []string) []string {
		i, found := slices.BinarySearch(ids, id)
		if found {
			return nil
		}
		return slices.Insert(ids, i, id)
	}); err != nil {
		return "", err
	}
	c.log.Debug("seed added", arbitrary.Fields{"ns": c.ns, "id": id, "size": len(data), "stored": len(payload)})
	return id, nil
}

func (c *corpus[V]) Get(ctx context.Context, id string) (V, bool, error) {
	var zero V
	raw, ok, err := c.GetRaw(ctx, id)
	if err != nil || !ok {
		return zero, false, err
	}
	return arbitrary.DecodeOnlyWith(c.codec, raw, c.cfg), true, nil
}

func (c *corpus[V]) GetRaw(ctx context.Context, id string) ([]byte, bool, error) {
	if !util.ValidID(id) {
		return nil, false, ErrInvalidID
	}
	k := util.SeedKey(c.ns, id)
	e, ok, err := c.load(ctx, k, wire.KindSeed)
	if err != nil || !ok {
		return nil, false, err
	}
	data, err := c.comp.unpack(e.Flags, e.Payload, c.maxSeed)
	if err != nil || util.EntryID(data) != id {
		c.log.Warn("dropping undecodable seed", arbitrary.Fields{"ns": c.ns, "id": id, "err": err})
		_ = c.provider.Del(ctx, k) // self-heal
		return nil, false, nil
	}
	return data, true, nil
}

func (c *corpus[V]) IDs(ctx context.Context) ([]string, error) {
	e, ok, err := c.load(ctx, util.IndexKey(c.ns), wire.KindIndex)
	if err != nil || !ok {
		return []string{}, err
	}
	return decodeIndex(e.Payload), nil
}

func (c *corpus[V]) Remove(ctx context.Context, id string) error {
	if !util.ValidID(id) {
		return ErrInvalidID
	}
	gen, err := c.gen.Generation(ctx, c.ns)
	if err != nil {
		return fmt.Errorf("corpus: generation: %w", err)
	}
	if err := c.provider.Del(ctx, util.SeedKey(c.ns, id)); err != nil {
		return err
	}
	return c.updateIndex(ctx, gen, func(ids []string) []string {
		i, found := slices.BinarySearch(ids, id)
		if !found {
			return nil
		}
		return slices.Delete(ids, i, i+1)
	})
}

// Reset bumps the namespace generation and clears the index. Seed entries
// stay in the provider until they are read (and dropped as stale) or expire.
func (c *corpus[V]) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	newGen, bumpErr := c.gen.Bump(ctx, c.ns)
	delErr := c.provider.Del(ctx, util.IndexKey(c.ns))
	if bumpErr != nil && delErr != nil {
		return errors.Join(bumpErr, delErr)
	}
	if bumpErr != nil {
		// the index is gone, so listed IDs are gone; stored seeds remain
		// readable by ID until the generation moves.
		c.log.Error("gen bump error", arbitrary.Fields{"ns": c.ns, "err": bumpErr})
		return nil
	}
	c.log.Info("corpus reset", arbitrary.Fields{"ns": c.ns, "gen": newGen})
	return nil
}

// load reads and validates one entry of the given kind. Corrupt or stale
// entries are deleted and reported as a miss.
func (c *corpus[V]) load(ctx context.Context, k string, kind wire.Kind) (wire.Entry, bool, error) {
	raw, ok, err := c.provider.Get(ctx, k)
	if err != nil || !ok {
		return wire.Entry{}, false, err
	}
	e, err := wire.DecodeEntry(raw)
	if err != nil || e.Kind != kind {
		c.log.Warn("dropping corrupt entry", arbitrary.Fields{"key": k})
		_ = c.provider.Del(ctx, k)
		return wire.Entry{}, false, nil
	}
	gen, err := c.gen.Generation(ctx, c.ns)
	if err != nil {
		return wire.Entry{}, false, fmt.Errorf("corpus: generation: %w", err)
	}
	if e.Gen != gen {
		c.log.Debug("dropping stale entry", arbitrary.Fields{"key": k, "gen": e.Gen, "current": gen})
		_ = c.provider.Del(ctx, k)
		return wire.Entry{}, false, nil
	}
	return e, true, nil
}

// updateIndex applies edit to the sorted ID list and stores the result
// under generation gen. edit returns nil when nothing changed.
func (c *corpus[V]) updateIndex(ctx context.Context, gen uint64, edit func([]string) []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, err := c.IDs(ctx)
	if err != nil {
		return err
	}
	next := edit(ids)
	if next == nil {
		return nil
	}
	k := util.IndexKey(c.ns)
	b := wire.EncodeEntry(wire.Entry{Kind: wire.KindIndex, Gen: gen, Payload: arbitrary.Encode(indexCodec, next)})
	ok, err := c.provider.Set(ctx, k, b, int64(len(b)), c.ttl)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRejected
	}
	return nil
}

// decodeIndex reads the ID list, keeping only well-formed IDs. The index
// has no size bound of its own, so the ceiling follows the payload length.
func decodeIndex(payload []byte) []string {
	ids := arbitrary.DecodeOnlyWith(indexCodec, payload, &arbitrary.Config{Ceiling: len(payload) + 1})
	out := ids[:0]
	for _, id := range ids {
		if util.ValidID(id) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

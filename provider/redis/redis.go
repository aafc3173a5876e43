// Package redis stores a seed corpus in Redis so that every fuzzing worker
// and CI job shares it. Pair it with genstore.Redis so a Reset from one
// process invalidates the corpus for all of them.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/arbitrary/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

// Provider is a provider.Provider over a go-redis client. The client is
// shared, typically with genstore.Redis; Close closes it only when
// Config.CloseClient is set.
type Provider struct {
	rdb   goredis.UniversalClient
	owned bool
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Provider{rdb: cfg.Client, owned: cfg.CloseClient}, nil
}

func (p *Provider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return b, true, nil
}

// Set ignores cost; Redis accounts memory itself. A zero or negative ttl
// keeps the seed until it is removed or its namespace is reset.
func (p *Provider) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if err := p.rdb.Set(ctx, key, value, max(ttl, 0)).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Del(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, key).Err()
}

// Keys lists stored keys matching a SCAN pattern, e.g. util.SeedPattern.
// Maintenance tooling compares it with the corpus index to find seeds the
// index lost.
func (p *Provider) Keys(ctx context.Context, pattern string) ([]string, error) {
	var out []string
	iter := p.rdb.Scan(ctx, 0, pattern, 256).Iterator()
	for iter.Next(ctx) {
		out = append(out, iter.Val())
	}
	return out, iter.Err()
}

func (p *Provider) Close(context.Context) error {
	if !p.owned {
		return nil
	}
	if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}

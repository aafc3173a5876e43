package genstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares generations through Redis, so a Reset issued by one worker
// is seen by every worker reading the corpus, and survives restarts.
//
// Keys are "<Prefix>:gen:<namespace>". When TTL is set, every Bump refreshes
// it; an expired key reads as generation 0, which makes entries written
// under a later generation stale.
type Redis struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ GenStore = (*Redis)(nil)

type RedisOptions struct {
	Prefix string        // default "arb"
	TTL    time.Duration // 0 = generations never expire
}

// NewRedis uses client without taking ownership; Close leaves it open.
func NewRedis(client redis.UniversalClient, opts RedisOptions) *Redis {
	if opts.Prefix == "" {
		opts.Prefix = "arb"
	}
	return &Redis{rdb: client, prefix: opts.Prefix, ttl: opts.TTL}
}

func (s *Redis) Key(ns string) string { return s.prefix + ":gen:" + ns }

func (s *Redis) Generation(ctx context.Context, ns string) (uint64, error) {
	v, err := s.rdb.Get(ctx, s.Key(ns)).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("genstore: %s: %w", ns, err)
	}
	return v, nil
}

func (s *Redis) Generations(ctx context.Context, ns []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(ns))
	if len(ns) == 0 {
		return out, nil
	}
	keys := make([]string, len(ns))
	for i, n := range ns {
		keys[i] = s.Key(n)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		g, err := parseGen(v)
		if err != nil {
			return nil, fmt.Errorf("genstore: %s: %w", ns[i], err)
		}
		out[ns[i]] = g
	}
	return out, nil
}

// parseGen reads one MGET reply; nil is a missing key.
func parseGen(v any) (uint64, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.ParseUint(v, 10, 64)
	case []byte:
		return strconv.ParseUint(string(v), 10, 64)
	}
	return 0, fmt.Errorf("unexpected reply %T", v)
}

func (s *Redis) Bump(ctx context.Context, ns string) (uint64, error) {
	k := s.Key(ns)
	if s.ttl <= 0 {
		v, err := s.rdb.Incr(ctx, k).Result()
		return uint64(v), err
	}
	var incr *redis.IntCmd
	if _, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, s.ttl)
		return nil
	}); err != nil {
		return 0, err
	}
	return uint64(incr.Val()), nil
}

func (s *Redis) Close(context.Context) error { return nil }

// arbcorpus maintains fuzz seed corpora stored in Redis.
//
//	arbcorpus [flags] ids
//	arbcorpus [flags] add [--from raw|pb|json|yaml|cbor|msgpack] <file>...
//	arbcorpus [flags] show [--format hex|raw|gofuzz|pb|json|yaml|cbor|msgpack] <id>
//	arbcorpus [flags] export <dir>
//	arbcorpus [flags] orphans
//	arbcorpus [flags] reset
//	arbcorpus [flags] gens <namespace>...
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/arbitrary"
	"github.com/unkn0wn-root/arbitrary/corpus"
	"github.com/unkn0wn-root/arbitrary/genstore"
	"github.com/unkn0wn-root/arbitrary/internal/util"
	zlog "github.com/unkn0wn-root/arbitrary/log/zap"
	"github.com/unkn0wn-root/arbitrary/provider/redis"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// keyLister finds stored seed keys independently of the corpus index.
type keyLister interface {
	Keys(ctx context.Context, pattern string) ([]string, error)
}

type app struct {
	out     io.Writer
	corpus  corpus.Corpus[[]byte]
	keys    keyLister
	ns      string
	maxSeed int
	format  string
	from    string
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var (
		configPath string
		namespace  string
		format     string
		from       string
	)
	flagSet := pflag.NewFlagSet("arbcorpus", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", os.Getenv("ARBCORPUS_CONFIG"), "YAML config file")
	flagSet.StringVarP(&namespace, "namespace", "n", "", "corpus namespace (overrides config)")
	flagSet.StringVar(&format, "format", "hex", "show output: hex|raw|gofuzz|pb|json|yaml|cbor|msgpack")
	flagSet.StringVar(&from, "from", "raw", "add input: raw|pb|json|yaml|cbor|msgpack")
	flagSet.Usage = func() { printHelp(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	rest := flagSet.Args()
	if len(rest) == 0 {
		printHelp(flagSet)
		return errUsage
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if namespace != "" {
		cfg.Namespace = namespace
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	zl, err := zcfg.Build()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	rdb := goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs:    cfg.Redis.Addrs,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	gens := genstore.NewRedis(rdb, genstore.RedisOptions{})
	if rest[0] == "gens" {
		return printGens(ctx, stdout, gens, rest[1:])
	}

	if cfg.Namespace == "" {
		return fmt.Errorf("namespace is required (--namespace or config)")
	}
	p, err := redis.New(redis.Config{Client: rdb})
	if err != nil {
		return err
	}
	comp, _ := cfg.compression()
	c, err := corpus.New(corpus.Options[[]byte]{
		Namespace:   cfg.Namespace,
		Provider:    p,
		GenStore:    gens,
		Codec:       bytesCodec,
		Config:      &arbitrary.Config{Ceiling: cfg.MaxSeedSize},
		Logger:      zlog.ZapLogger{L: zl},
		TTL:         cfg.TTL,
		Compression: comp,
		MaxSeedSize: cfg.MaxSeedSize,
	})
	if err != nil {
		return err
	}
	defer c.Close(ctx)

	a := &app{
		out:     stdout,
		corpus:  c,
		keys:    p,
		ns:      cfg.Namespace,
		maxSeed: cfg.MaxSeedSize,
		format:  format,
		from:    from,
	}
	return a.dispatch(ctx, rest)
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "ids":
		ids, err := a.corpus.IDs(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(a.out, id)
		}
		return nil

	case "add":
		if len(args) == 0 {
			return fmt.Errorf("add: expected at least one file")
		}
		for _, path := range args {
			doc, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			seed, err := toSeed(doc, a.from, a.maxSeed)
			if err != nil {
				return fmt.Errorf("add %s: %w", path, err)
			}
			id, err := a.corpus.AddRaw(ctx, seed)
			if err != nil {
				return fmt.Errorf("add %s: %w", path, err)
			}
			fmt.Fprintf(a.out, "%s\t%s\n", id, path)
		}
		return nil

	case "show":
		if len(args) != 1 {
			return fmt.Errorf("show: expected one seed id")
		}
		b, ok, err := a.corpus.GetRaw(ctx, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("show: seed %s not found", args[0])
		}
		return a.show(b)

	case "export":
		if len(args) != 1 {
			return fmt.Errorf("export: expected a target directory")
		}
		n, err := a.corpus.ExportGoFuzz(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "exported %d seeds to %s\n", n, args[0])
		return nil

	case "orphans":
		return a.orphans(ctx)

	case "reset":
		return a.corpus.Reset(ctx)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *app) show(b []byte) error {
	var err error
	switch a.format {
	case "hex":
		_, err = io.WriteString(a.out, hex.Dump(b))
	case "raw":
		_, err = a.out.Write(b)
	case "gofuzz":
		_, err = a.out.Write(corpus.GoFuzzFile(b))
	default:
		var doc []byte
		doc, err = fromSeed(b, a.format, &arbitrary.Config{Ceiling: a.maxSeed})
		if err != nil {
			return fmt.Errorf("show: %w", err)
		}
		_, err = a.out.Write(doc)
	}
	return err
}

// orphans prints IDs stored under the namespace but missing from its index,
// e.g. after two workers raced on an index update.
func (a *app) orphans(ctx context.Context) error {
	keys, err := a.keys.Keys(ctx, util.SeedPattern(a.ns))
	if err != nil {
		return err
	}
	ids, err := a.corpus.IDs(ctx)
	if err != nil {
		return err
	}
	prefix := util.SeedKey(a.ns, "")
	var found []string
	for _, k := range keys {
		id := strings.TrimPrefix(k, prefix)
		if _, listed := slices.BinarySearch(ids, id); !listed && util.ValidID(id) {
			found = append(found, id)
		}
	}
	slices.Sort(found)
	for _, id := range found {
		fmt.Fprintln(a.out, id)
	}
	return nil
}

func printGens(ctx context.Context, stdout io.Writer, gens genstore.GenStore, namespaces []string) error {
	if len(namespaces) == 0 {
		return fmt.Errorf("gens: expected at least one namespace")
	}
	m, err := gens.Generations(ctx, namespaces)
	if err != nil {
		return err
	}
	for _, ns := range namespaces {
		fmt.Fprintf(stdout, "%s\t%d\n", ns, m[ns])
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `arbcorpus maintains fuzz seed corpora stored in Redis.

Usage:
  arbcorpus [flags] <command> [args]

Commands:
  ids                  list seed IDs of the namespace
  add <file>...        store files as seeds (--from raw|pb|json|yaml|cbor|msgpack)
  show <id>            print one seed (--format hex|raw|gofuzz|pb|json|yaml|cbor|msgpack)
  export <dir>         write the corpus as testdata/fuzz files
  orphans              list stored seeds missing from the index
  reset                invalidate every seed of the namespace
  gens <namespace>...  print namespace generations

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

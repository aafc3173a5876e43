package corpus

const (
	defaultMinCompressSize = 256
	defaultMaxSeedSize     = 1 << 20
)

func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

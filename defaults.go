package arbitrary

// DefaultCeiling is the element storage budget, in bytes, of one sequence
// decode when Config.Ceiling is unset. Text decodes use it as a character count.
const DefaultCeiling = 1 << 20

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

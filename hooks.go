package arbitrary

// Hooks lightweight callbacks for silent degradation during decode.
// Implementations MUST be cheap and non-blocking and MUST NOT retain src.
// They never change what a decode returns.
type Hooks interface {
	// A fixed-width scalar needed width bytes but only available remained.
	// The scalar decoded as zero and consumed nothing.
	ScalarTruncated(width, available int)

	// A length prefix claimed more elements than the ceiling allows.
	// kind ∈ {"sequence", "text"}
	LengthClamped(kind string, claimed uint64, limit int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) ScalarTruncated(int, int)          {}
func (NopHooks) LengthClamped(string, uint64, int) {}

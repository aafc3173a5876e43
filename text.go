package arbitrary

import (
	"unicode/utf8"
)

type textCodec struct{}

// String is the codec of Go strings: a platform-width character count
// followed by one Char per rune. Text inherits the Char range: runes above
// 255 are truncated to their low byte, so only Latin-1 text round-trips.
// Decoded text is always valid UTF-8.
var String Codec[string] = textCodec{}

func (textCodec) Append(dst []byte, s string) []byte {
	dst = Uint.Append(dst, uint(utf8.RuneCountInString(s)))
	for _, r := range s {
		dst = Char.Append(dst, r)
	}
	return dst
}

func (textCodec) Decode(src []byte, cfg *Config) (string, []byte) {
	claimed, src := Uint.Decode(src, cfg)
	n := clampLen(uint64(claimed), cfg.ceiling(), "text", cfg)
	if n == 0 {
		return "", src
	}

	buf := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		var r rune
		r, src = Char.Decode(src, cfg)
		buf = utf8.AppendRune(buf, r)
	}
	return string(buf), src
}

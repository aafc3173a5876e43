package util

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

const idLen = 16

// EntryID returns the content ID of a raw seed: the first 16 hex chars of its
// BLAKE3 digest. Identical inputs share an ID, so re-adding a seed is a no-op.
func EntryID(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:idLen/2])
}

// ValidID reports whether id has the shape EntryID produces.
func ValidID(id string) bool {
	if len(id) != idLen {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

func SeedKey(ns, id string) string { return "seed:" + ns + ":" + id }
func IndexKey(ns string) string    { return "index:" + ns }

// SeedPattern matches every seed key of ns in a Redis SCAN.
func SeedPattern(ns string) string { return "seed:" + ns + ":*" }

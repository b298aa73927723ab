package rng

import (
	"context"
	"hash/fnv"
	"math/rand"
)

// StreamSource implements ports.RNGPort over math/rand with hash-combined
// sub-stream seeding, so each named operation and each replication gets an
// independent deterministic stream off one base seed.
type StreamSource struct{}

// NewStreamSource creates a stream source
func NewStreamSource() *StreamSource {
	return &StreamSource{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (s *StreamSource) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if name != "" {
		seed += int64(hashString(name))
	}
	return rand.New(rand.NewSource(seed)), nil
}

// ReplicationStream creates the sub-stream for one replication index. The
// seed mixes only the base seed and the index: two runs with the same seed
// produce identical per-replication draws whatever the worker count.
func (s *StreamSource) ReplicationStream(ctx context.Context, replication int, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed + int64(hashString("replication"))*int64(replication+1)
	return rand.New(rand.NewSource(seed)), nil
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

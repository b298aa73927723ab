package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// ReplicationStream creates a deterministic RNG sub-stream for one
	// replication. The stream depends only on the base seed and the
	// replication index, so results reproduce under parallel execution
	// regardless of worker scheduling.
	ReplicationStream(ctx context.Context, replication int, baseSeed int64) (*rand.Rand, error)
}

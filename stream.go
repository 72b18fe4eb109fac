package qbench

import (
	"context"
	"math/rand/v2"
)

type streamKey struct{}

/*
WithStream tags ctx with the random stream a simulator call belongs to.
The parallel sweep sets it to the depth being benchmarked so a seeded
simulator can draw from a per-depth stream instead of a shared one.
*/
func WithStream(ctx context.Context, stream uint64) context.Context {
	return context.WithValue(ctx, streamKey{}, stream)
}

// StreamFrom reports the stream set by WithStream, if any.
func StreamFrom(ctx context.Context) (uint64, bool) {
	stream, ok := ctx.Value(streamKey{}).(uint64)
	return stream, ok
}

// newRand returns the PCG stream for seed. Stream 0 is the sequential sweep.
func newRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

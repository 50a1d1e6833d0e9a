// Package shuffle randomizes play order with repeated random transpositions.
package shuffle

import (
	"math/rand/v2"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/stoned-ape/shuffleplay/internal/domain/playlist"
)

// DefaultPasses is the number of transpositions per element.
const DefaultPasses = 4

// Shuffler performs passes*n random swaps over n elements.
type Shuffler struct {
	rng    *rand.Rand
	passes int
	seed   int64
}

// New creates a shuffler. A zero seed is replaced by the current time and
// passes below 1 fall back to DefaultPasses.
func New(seed int64, passes int) *Shuffler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if passes < 1 {
		passes = DefaultPasses
	}
	return &Shuffler{
		rng:    rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>32|uint64(seed)<<32)),
		passes: passes,
		seed:   seed,
	}
}

// Seed returns the effective seed.
func (s *Shuffler) Seed() int64 {
	return s.seed
}

// Swap performs passes*n transpositions of positions chosen uniformly in
// [0, n). Self-swaps are allowed.
func (s *Shuffler) Swap(n int, swap func(i, j int)) {
	if n <= 0 {
		return
	}
	for k := 0; k < s.passes*n; k++ {
		swap(s.rng.IntN(n), s.rng.IntN(n))
	}
}

// Playlist shuffles p in place.
func (s *Shuffler) Playlist(p *playlist.Playlist) {
	s.Swap(p.Len(), p.Swap)
	zlog.Debug().Msgf("shuffle: done: seed=%d passes=%d tracks=%d", s.seed, s.passes, p.Len())
}

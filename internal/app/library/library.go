// Package library lists the playable entries of a music directory.
package library

import (
	"os"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/stoned-ape/shuffleplay/internal/app/filter"
	"github.com/stoned-ape/shuffleplay/internal/domain/playlist"
	"github.com/stoned-ape/shuffleplay/internal/domain/track"
	"github.com/stoned-ape/shuffleplay/internal/infra/oserr"
)

// ErrDirectory marks failures to enter the library directory.
var ErrDirectory = errors.New("cannot open library directory")

// Lister lists tracks from a directory.
type Lister struct {
	chain *filter.Chain
}

// NewLister creates a lister. A nil chain accepts every entry.
func NewLister(chain *filter.Chain) *Lister {
	if chain == nil {
		chain = filter.NewChain()
	}
	return &Lister{chain: chain}
}

// List changes the working directory to dir and returns its entries,
// sorted by name, as a playlist. Track names stay relative to dir so the
// player resolves them from the new working directory.
func (l *Lister) List(dir string) (*playlist.Playlist, error) {
	if err := os.Chdir(dir); err != nil {
		return nil, errors.Mark(oserr.Wrap("chdir", err), ErrDirectory)
	}

	entries, err := os.ReadDir(".")
	if err != nil {
		return nil, oserr.Wrap("readdir", err)
	}

	tracks := make([]track.Track, 0, len(entries))
	for _, entry := range entries {
		t := track.New(dir, entry.Name(), entry.IsDir())
		if result := l.chain.Execute(t); !result.Accepted {
			zlog.Debug().Msgf("library: skipped: name=%q code=%s", t.Name, result.Code)
			continue
		}
		tracks = append(tracks, t)
	}

	zlog.Info().Msgf("library: listed: dir=%s entries=%d tracks=%d", dir, len(entries), len(tracks))
	return playlist.New(dir, tracks), nil
}

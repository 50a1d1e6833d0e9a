package filter

import (
	"github.com/stoned-ape/shuffleplay/internal/domain/track"
)

// DirectoryFilter rejects subdirectories.
type DirectoryFilter struct{}

func (f *DirectoryFilter) Name() string {
	return "directory_filter"
}

func (f *DirectoryFilter) Description() string {
	return "Skips subdirectories"
}

func (f *DirectoryFilter) ReturnCodes() []string {
	return []string{"directory"}
}

func (f *DirectoryFilter) ValidateConfig(settings map[string]any) error {
	return nil
}

func (f *DirectoryFilter) Check(t track.Track) Result {
	if t.IsDir {
		return Reject("directory")
	}
	return Accept()
}

func init() {
	Register("directory_filter", func() Filter {
		return &DirectoryFilter{}
	})
}

package filter

import (
	"github.com/stoned-ape/shuffleplay/internal/domain/track"
)

// HiddenEntryFilter rejects dot-entries.
type HiddenEntryFilter struct{}

func (f *HiddenEntryFilter) Name() string {
	return "hidden_entry_filter"
}

func (f *HiddenEntryFilter) Description() string {
	return "Skips entries whose name starts with a dot"
}

func (f *HiddenEntryFilter) ReturnCodes() []string {
	return []string{"hidden_entry"}
}

func (f *HiddenEntryFilter) ValidateConfig(settings map[string]any) error {
	return nil
}

func (f *HiddenEntryFilter) Check(t track.Track) Result {
	if t.IsHidden() {
		return Reject("hidden_entry")
	}
	return Accept()
}

func init() {
	Register("hidden_entry_filter", func() Filter {
		return &HiddenEntryFilter{}
	})
}

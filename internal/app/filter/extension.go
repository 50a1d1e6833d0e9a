package filter

import (
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/stoned-ape/shuffleplay/internal/domain/track"
)

// ExtensionConfig represents the configuration for ExtensionFilter.
type ExtensionConfig struct {
	Extensions    []string `yaml:"extensions" mapstructure:"extensions" validate:"required,min=1,dive,required"`
	CaseSensitive bool     `yaml:"case_sensitive" mapstructure:"case_sensitive"`
}

// ExtensionFilter accepts only entries with one of the configured extensions.
type ExtensionFilter struct {
	config *ExtensionConfig
	allow  map[string]struct{}
}

// NewExtensionFilter creates a new extension filter.
func NewExtensionFilter() *ExtensionFilter {
	return &ExtensionFilter{}
}

func (f *ExtensionFilter) Name() string {
	return "extension_filter"
}

func (f *ExtensionFilter) Description() string {
	return "Accepts only files with a listed extension"
}

func (f *ExtensionFilter) ReturnCodes() []string {
	return []string{"extension_mismatch"}
}

func (f *ExtensionFilter) ValidateConfig(settings map[string]any) error {
	var config ExtensionConfig
	if err := decodeSettings(settings, &config); err != nil {
		return err
	}

	f.config = &config
	f.allow = make(map[string]struct{}, len(config.Extensions))
	for _, ext := range config.Extensions {
		f.allow[f.normalize(ext)] = struct{}{}
	}
	zlog.Debug().Msgf("extension filter config: %+v", config)
	return nil
}

// normalize strips the leading dot and folds case unless configured otherwise.
func (f *ExtensionFilter) normalize(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if f.config == nil || !f.config.CaseSensitive {
		ext = strings.ToLower(ext)
	}
	return ext
}

func (f *ExtensionFilter) Check(t track.Track) Result {
	// If config is not set, accept all tracks
	if f.config == nil {
		return Accept()
	}

	if _, ok := f.allow[f.normalize(t.Ext())]; !ok {
		return Reject("extension_mismatch")
	}
	return Accept()
}

func init() {
	Register("extension_filter", func() Filter {
		return NewExtensionFilter()
	})
}

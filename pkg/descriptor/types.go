package descriptor

import (
	"time"

	"mercator-hq/stc/pkg/cache"
	"mercator-hq/stc/pkg/stc/ast"
)

// Metadata is read from an optional YAML sidecar next to a descriptor file
// (m81.stcs + m81.yaml).
type Metadata struct {
	Title       string   `yaml:"title" json:"title,omitempty"`
	Owner       string   `yaml:"owner" json:"owner,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
}

// Descriptor is one resource description loaded from disk. STC-S files hold
// exactly one tree; STC-X files hold one tree per resource element.
type Descriptor struct {
	// ID is the file name without its extension.
	ID string `json:"id"`

	// Path is the file the descriptor was loaded from.
	Path string `json:"path"`

	// Format is the notation of Source.
	Format cache.Format `json:"format"`

	// Source is the file content with comment lines removed.
	Source string `json:"-"`

	// Trees are the parsed resource descriptions.
	Trees []*ast.Tree `json:"-"`

	Metadata Metadata `json:"metadata"`

	// Hash fingerprints Source and the sidecar; a reload only touches
	// descriptors whose hash changed.
	Hash string `json:"hash"`

	ModTime time.Time `json:"mod_time"`
}

// Summary is the listing form of a descriptor.
type Summary struct {
	ID       string       `json:"id"`
	Format   cache.Format `json:"format"`
	Trees    int          `json:"trees"`
	Systems  []string     `json:"systems"`
	Metadata Metadata     `json:"metadata"`
}

// Summary condenses d for listings.
func (d *Descriptor) Summary() Summary {
	s := Summary{
		ID:       d.ID,
		Format:   d.Format,
		Trees:    len(d.Trees),
		Metadata: d.Metadata,
	}
	for _, t := range d.Trees {
		if t.Space != nil {
			s.Systems = append(s.Systems, t.Space.CoordSys.String())
		}
	}
	return s
}

// LoaderConfig contains configuration for the descriptor loader.
type LoaderConfig struct {
	// MaxFileSize is the maximum size of a descriptor file in bytes.
	MaxFileSize int64

	// SkipHidden skips files and directories starting with a dot.
	SkipHidden bool

	// MaxExpressionLength bounds STC-S descriptors; 0 is unlimited.
	MaxExpressionLength int
}

// DefaultLoaderConfig returns the default loader configuration.
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		MaxFileSize:         4 << 20,
		SkipHidden:          true,
		MaxExpressionLength: 64 * 1024,
	}
}

// Descriptor file extensions.
const (
	ExtSTCS     = ".stcs"
	ExtSTCX     = ".xml"
	ExtMetadata = ".yaml"
)

// ReloadEvent reports the outcome of one registry reload.
type ReloadEvent struct {
	Time    time.Time
	Added   []string
	Changed []string
	Removed []string
	Loaded  int
	Err     error
}

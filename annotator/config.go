// Package annotator augments parsed JSX trees with traceability metadata:
// which file and component authored each element, stable identifiers for
// runtime patching and, for elements rendered from collection loops,
// pointers back to the literal data that produced them.
package annotator

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/viant/jsxmark/markup"
)

// Attribute names written onto annotated elements. These are the wire
// format consumed by the runtime bridge and must match exactly.
const (
	AttrComponentFile  = "data-component-file"
	AttrComponentName  = "data-component-name"
	AttrEditorID       = "data-editor-id"
	AttrRenderedBy     = "data-rendered-by"
	AttrChildrenSource = "data-children-source"
	AttrImgSource      = "data-img-source"
)

// childrenIdent is the conventional pass-through content identifier; a
// {children} slot is never wrapped since wrapping it would sever the
// authorship link back to the ancestor that supplied the content
const childrenIdent = "children"

// Config controls one annotation run
type Config struct {
	// Filename is the path recorded in authorship attributes. Without it
	// no metadata can be attributed, so annotation is a no-op.
	Filename string `yaml:"filename,omitempty"`
	// SkipFiles disables annotation for any filename equal to or
	// containing one of the entries
	SkipFiles []string `yaml:"skipFiles,omitempty"`
	// Bridge overrides the runtime bridge component tag
	Bridge string `yaml:"bridge,omitempty"`
}

// DefaultConfig returns an empty configuration
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads a YAML configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// Skipped reports whether the configured filename is on the skip list,
// matched by exact equality or substring containment
func (c *Config) Skipped() bool {
	for _, skip := range c.SkipFiles {
		if skip == "" {
			continue
		}
		if c.Filename == skip || strings.Contains(c.Filename, skip) {
			return true
		}
	}
	return false
}

func (c *Config) bridgeTag() string {
	if c.Bridge != "" {
		return c.Bridge
	}
	return markup.DefaultBridgeTag
}

package plugin

import (
	"fmt"
	"net/url"
	"strings"
)

// Info contains plugin metadata
type Info struct {
	URI      string `yaml:"uri"`      // Unique plugin URI (e.g., "http://example.com/plugins/gain")
	Name     string `yaml:"name"`     // Display name
	Version  string `yaml:"version"`  // Semantic version (e.g., "1.0.0")
	Vendor   string `yaml:"vendor"`   // Company/developer name
	Category string `yaml:"category"` // Plugin category (e.g., "Fx", "Instrument")
}

// ParameterKey returns the URI a host uses to address parameter n in
// patch messages.
func (i Info) ParameterKey(n int) string {
	return fmt.Sprintf("%s#Par%d", i.URI, n)
}

// DescriptorURI returns the URI of the descriptor for I/O configuration n.
func (i Info) DescriptorURI(n int) string {
	return fmt.Sprintf("%s#io_%d", i.URI, n)
}

// Validate checks that the plugin URI is usable as a key prefix.
func (i Info) Validate() error {
	if i.URI == "" {
		return fmt.Errorf("%w: plugin uri is empty", ErrInvalidConfig)
	}
	if strings.Contains(i.URI, "#") {
		return fmt.Errorf("%w: plugin uri %q must not contain a fragment", ErrInvalidConfig, i.URI)
	}
	u, err := url.Parse(i.URI)
	if err != nil || u.Scheme == "" {
		return fmt.Errorf("%w: plugin uri %q is not absolute", ErrInvalidConfig, i.URI)
	}
	if i.Name == "" {
		return fmt.Errorf("%w: plugin name is empty", ErrInvalidConfig)
	}
	return nil
}

package envelope

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how a response is rendered.
type Format string

const (
	// FormatJSON renders the envelope as indented JSON (default).
	FormatJSON Format = "json"
	// FormatYAML renders the envelope as YAML.
	FormatYAML Format = "yaml"
	// FormatText is a human-readable summary; commands render it themselves.
	FormatText Format = "text"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "plain":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, yaml or text)", s)
	}
}

// Encode writes the response to w in the given machine format.
// FormatText is the caller's job; asking for it here is a programming error.
func Encode(w io.Writer, resp *Response, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(resp)
	default:
		return fmt.Errorf("envelope: cannot encode format %q", format)
	}
}

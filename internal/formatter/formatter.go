package formatter

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/destoken/internal/generator"
)

// Format names an output rendering
type Format string

const (
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name. An empty name means FormatPlain.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPlain:
		return FormatPlain, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want plain, json or yaml)", s)
}

// document is the structured form of a token
type document struct {
	Token       string `json:"token" yaml:"token"`
	Digest      string `json:"digest" yaml:"digest"`
	Salt        string `json:"salt" yaml:"salt"`
	Identifier  string `json:"identifier" yaml:"identifier"`
	Destination string `json:"destination" yaml:"destination"`
}

// Formatter renders tokens for output
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders token without a trailing newline. The plain format is the
// bare <digest>;<salt> line.
func (f *Formatter) Format(token generator.Token, format Format) (string, error) {
	doc := document{
		Token:       token.String(),
		Digest:      token.Digest,
		Salt:        token.Salt,
		Identifier:  token.Identifier,
		Destination: token.Destination,
	}

	switch format {
	case "", FormatPlain:
		return token.String(), nil
	case FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode JSON: %w", err)
		}
		return string(out), nil
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("failed to encode YAML: %w", err)
		}
		return strings.TrimRight(string(out), "\n"), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/destoken/internal/generator"
	"github.com/mcncl/destoken/internal/parser"
	"github.com/mcncl/destoken/internal/search"
)

func TestIntegration_ParserSearchGeneratorFormatter(t *testing.T) {
	// Parser -> Search -> Generator -> Formatter
	jsonInput := `{
		"student": {
			"roll": "Roll 123",
			"trips": [
				{"id": 1, "mode": "bus"},
				{"id": 2, "destination": "Delhi"}
			]
		},
		"destination": "Mumbai"
	}`

	root, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	destination, found := search.FindFirst(root, search.DefaultKey)
	require.True(t, found)
	assert.Equal(t, "Delhi", destination)

	gen, err := generator.NewSeededGenerator(99)
	require.NoError(t, err)
	token := gen.Generate(" Roll 123 ", destination)

	out, err := NewFormatter().Format(token, FormatPlain)
	require.NoError(t, err)

	digest, salt, ok := strings.Cut(out, ";")
	require.True(t, ok)
	assert.Regexp(t, `^[0-9a-f]{32}$`, digest)
	assert.Regexp(t, `^[A-Za-z0-9]{8}$`, salt)
	assert.Equal(t, generator.Digest("roll123"+"Delhi"+salt), digest)
}

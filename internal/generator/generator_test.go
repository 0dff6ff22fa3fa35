package generator

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/destoken/internal/errors"
)

var (
	hexDigestRegex = regexp.MustCompile(`^[0-9a-f]{32}$`)
	saltRegex      = regexp.MustCompile(`^[A-Za-z0-9]{8}$`)
)

// counterSource returns 0, 1, 2, ... modulo n.
type counterSource struct {
	next int
}

func (c *counterSource) IntN(n int) int {
	v := c.next % n
	c.next++
	return v
}

func TestDigest(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "d41d8cd98f00b204e9800998ecf8427e"},
		{"abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"roll123DelhiABCDEFGH", "e9b540078aabe87b785fd85d30ecc5ab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			digest := Digest(tt.input)
			assert.Equal(t, tt.expected, digest)
			assert.Regexp(t, hexDigestRegex, digest)
		})
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{" Roll 123 ", "roll123"},
		{"roll123", "roll123"},
		{"ROLL123", "roll123"},
		{"A B  C", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdentifier(tt.input))
		})
	}
}

func TestGenerator_SaltFromSource(t *testing.T) {
	g, err := NewGenerator(&counterSource{})
	require.NoError(t, err)

	assert.Equal(t, "ABCDEFGH", g.Salt())
	assert.Equal(t, "IJKLMNOP", g.Salt())
}

func TestGenerator_Generate(t *testing.T) {
	g, err := NewGenerator(&counterSource{})
	require.NoError(t, err)

	token := g.Generate(" Roll 123 ", "Delhi")
	assert.Equal(t, "roll123", token.Identifier)
	assert.Equal(t, "Delhi", token.Destination)
	assert.Equal(t, "ABCDEFGH", token.Salt)
	assert.Equal(t, "e9b540078aabe87b785fd85d30ecc5ab", token.Digest)
	assert.Equal(t, "e9b540078aabe87b785fd85d30ecc5ab;ABCDEFGH", token.String())
}

func TestGenerator_NormalizedIdentifiersShareDigest(t *testing.T) {
	a := Assemble(" Roll 123 ", "Delhi", "s4ltS4lt")
	b := Assemble("roll123", "Delhi", "s4ltS4lt")
	assert.Equal(t, a.Digest, b.Digest)
}

func TestGenerator_SaltShape(t *testing.T) {
	g, err := NewRandomGenerator()
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		salt := g.Salt()
		require.Regexp(t, saltRegex, salt)
	}
}

func TestGenerator_SaltUsesWholeAlphabet(t *testing.T) {
	g, err := NewSeededGenerator(1)
	require.NoError(t, err)

	seen := make(map[rune]bool)
	for i := 0; i < 2000; i++ {
		for _, r := range g.Salt() {
			seen[r] = true
		}
	}
	assert.Len(t, seen, len(Alphanumeric))
}

func TestGenerator_RandomRunsDiffer(t *testing.T) {
	g1, err := NewRandomGenerator()
	require.NoError(t, err)
	g2, err := NewRandomGenerator()
	require.NoError(t, err)

	t1 := g1.Generate("roll123", "Delhi")
	t2 := g2.Generate("roll123", "Delhi")
	assert.NotEqual(t, t1.Salt, t2.Salt)
	assert.NotEqual(t, t1.Digest, t2.Digest)
}

func TestGenerator_SeededIsReproducible(t *testing.T) {
	g1, err := NewSeededGenerator(42)
	require.NoError(t, err)
	g2, err := NewSeededGenerator(42)
	require.NoError(t, err)
	g3, err := NewSeededGenerator(43)
	require.NoError(t, err)

	s1, s2, s3 := g1.Salt(), g2.Salt(), g3.Salt()
	assert.Equal(t, s1, s2)
	assert.NotEqual(t, s1, s3)
}

func TestGenerator_Options(t *testing.T) {
	g, err := NewGenerator(&counterSource{}, WithSaltLength(4), WithAlphabet("xy"))
	require.NoError(t, err)
	assert.Equal(t, "xyxy", g.Salt())
}

func TestNewGenerator_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		opts []Option
	}{
		{"nil source", nil, nil},
		{"zero length", &counterSource{}, []Option{WithSaltLength(0)}},
		{"empty alphabet", &counterSource{}, []Option{WithAlphabet("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator(tt.src, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeGenerate})
		})
	}
}

func TestParseToken(t *testing.T) {
	token, err := ParseToken("E9B540078AABE87B785FD85D30ECC5AB;ABCDEFGH\n")
	require.NoError(t, err)
	assert.Equal(t, "e9b540078aabe87b785fd85d30ecc5ab", token.Digest)
	assert.Equal(t, "ABCDEFGH", token.Salt)

	for _, bad := range []string{
		"no-separator",
		"abc;ABCDEFGH",
		strings.Repeat("z", 32) + ";ABCDEFGH",
		"e9b540078aabe87b785fd85d30ecc5ab;",
	} {
		_, err := ParseToken(bad)
		assert.ErrorIs(t, err, errors.ErrInvalidToken, bad)
	}
}

func TestVerify(t *testing.T) {
	g, err := NewSeededGenerator(7)
	require.NoError(t, err)
	token := g.Generate("Roll 123", "Delhi")

	parsed, err := ParseToken(token.String())
	require.NoError(t, err)

	assert.True(t, Verify("roll123", "Delhi", parsed))
	assert.True(t, Verify(" ROLL 123", "Delhi", parsed))
	assert.False(t, Verify("roll124", "Delhi", parsed))
	assert.False(t, Verify("roll123", "Mumbai", parsed))

	parsed.Salt = "AAAAAAAA"
	assert.False(t, Verify("roll123", "Delhi", parsed))
}

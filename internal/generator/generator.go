package generator

import (
	"crypto/md5"
	crand "crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/mcncl/destoken/internal/errors"
)

const (
	// DefaultSaltLength is the number of characters in a salt.
	DefaultSaltLength = 8
	// Alphanumeric is the default salt alphabet.
	Alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// Separator sits between the digest and the salt in a printed token.
	Separator = ";"
)

// Source yields uniformly distributed integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Token is the result of hashing an identifier, a destination and a salt.
type Token struct {
	Identifier  string `json:"identifier" yaml:"identifier"`
	Destination string `json:"destination" yaml:"destination"`
	Salt        string `json:"salt" yaml:"salt"`
	Digest      string `json:"digest" yaml:"digest"`
}

// String renders the token as <digest>;<salt>.
func (t Token) String() string {
	return t.Digest + Separator + t.Salt
}

// Generator builds tokens. It draws salts only from its own Source.
type Generator struct {
	rng        Source
	saltLength int
	alphabet   string
}

// Option configures a Generator.
type Option func(*Generator)

// WithSaltLength sets the number of salt characters.
func WithSaltLength(n int) Option {
	return func(g *Generator) {
		g.saltLength = n
	}
}

// WithAlphabet sets the characters salts are drawn from.
func WithAlphabet(alphabet string) Option {
	return func(g *Generator) {
		g.alphabet = alphabet
	}
}

// NewGenerator creates a Generator that draws salts from rng.
func NewGenerator(rng Source, opts ...Option) (*Generator, error) {
	g := &Generator{
		rng:        rng,
		saltLength: DefaultSaltLength,
		alphabet:   Alphanumeric,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		return nil, errors.NewGenerateError("random source is nil", nil)
	}
	if g.saltLength <= 0 {
		return nil, errors.NewGenerateError(fmt.Sprintf("salt length must be positive, got %d", g.saltLength), nil)
	}
	if g.alphabet == "" {
		return nil, errors.NewGenerateError("salt alphabet is empty", nil)
	}
	return g, nil
}

// NewSeededGenerator creates a Generator whose salts are reproducible for a given seed.
func NewSeededGenerator(seed uint64, opts ...Option) (*Generator, error) {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), opts...)
}

// NewRandomGenerator creates a Generator seeded from the operating system's
// random source, so every run gets different salts.
func NewRandomGenerator(opts ...Option) (*Generator, error) {
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, errors.NewGenerateError("failed to seed random source", err)
	}
	src := rand.NewPCG(binary.LittleEndian.Uint64(seed[:8]), binary.LittleEndian.Uint64(seed[8:]))
	return NewGenerator(rand.New(src), opts...)
}

// Salt returns a fresh random salt.
func (g *Generator) Salt() string {
	symbols := []rune(g.alphabet)
	var sb strings.Builder
	sb.Grow(g.saltLength)
	for i := 0; i < g.saltLength; i++ {
		sb.WriteRune(symbols[g.rng.IntN(len(symbols))])
	}
	return sb.String()
}

// Generate normalizes identifier, draws a salt and hashes
// identifier || destination || salt.
func (g *Generator) Generate(identifier, destination string) Token {
	return Assemble(identifier, destination, g.Salt())
}

// Assemble builds the token for a known salt.
func Assemble(identifier, destination, salt string) Token {
	id := NormalizeIdentifier(identifier)
	return Token{
		Identifier:  id,
		Destination: destination,
		Salt:        salt,
		Digest:      Digest(id + destination + salt),
	}
}

// NormalizeIdentifier lowercases s and removes every space.
func NormalizeIdentifier(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// Digest returns the MD5 of s as 32 lowercase hex characters.
func Digest(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ParseToken splits a printed <digest>;<salt> token.
func ParseToken(s string) (Token, error) {
	digest, salt, ok := strings.Cut(strings.TrimSpace(s), Separator)
	if !ok {
		return Token{}, errors.NewVerifyError(fmt.Sprintf("token %q has no %q separator", s, Separator), errors.ErrInvalidToken)
	}
	if len(digest) != hex.EncodedLen(md5.Size) {
		return Token{}, errors.NewVerifyError(fmt.Sprintf("digest must be %d hex characters", hex.EncodedLen(md5.Size)), errors.ErrInvalidToken)
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return Token{}, errors.NewVerifyError("digest is not hexadecimal", errors.ErrInvalidToken)
	}
	if salt == "" {
		return Token{}, errors.NewVerifyError("salt is empty", errors.ErrInvalidToken)
	}
	return Token{Digest: strings.ToLower(digest), Salt: salt}, nil
}

// Verify recomputes the digest for identifier and destination with the
// token's salt and reports whether it matches.
func Verify(identifier, destination string, token Token) bool {
	return Assemble(identifier, destination, token.Salt).Digest == strings.ToLower(token.Digest)
}

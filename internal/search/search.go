// Package search finds the first occurrence of a key in a decoded JSON tree.
//
// Objects are walked depth first in insertion order. An entry whose key
// matches wins before its own subtree or any later sibling is looked at.
// Arrays are scanned element by element and only object elements are
// searched; arrays nested directly inside arrays are skipped.
package search

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/destoken/internal/models"
)

// DefaultKey is the key the tool looks for unless told otherwise.
const DefaultKey = "destination"

// MatchMode controls how object keys are compared with the target key.
type MatchMode string

const (
	// MatchExact compares keys byte for byte.
	MatchExact MatchMode = "exact"
	// MatchFold compares keys case-insensitively.
	MatchFold MatchMode = "fold"
	// MatchSnake compares keys after converting both to snake_case, so
	// "Destination", "DESTINATION" and "destination" are the same key.
	MatchSnake MatchMode = "snake"
)

// ParseMatchMode validates a match mode name. An empty name means MatchExact.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchExact:
		return MatchExact, nil
	case MatchFold:
		return MatchFold, nil
	case MatchSnake:
		return MatchSnake, nil
	}
	return "", fmt.Errorf("unknown match mode %q (want exact, fold or snake)", s)
}

// Option configures a Finder.
type Option func(*Finder)

// WithMatch sets the key comparison mode.
func WithMatch(mode MatchMode) Option {
	return func(f *Finder) {
		f.mode = mode
	}
}

// Finder searches a value tree for the first entry with a given key.
type Finder struct {
	key   string
	mode  MatchMode
	match func(string) bool

	result string
	found  bool
}

// NewFinder creates a Finder for key.
func NewFinder(key string, opts ...Option) *Finder {
	f := &Finder{key: key, mode: MatchExact}
	for _, opt := range opts {
		opt(f)
	}
	f.match = f.matcher()
	return f
}

func (f *Finder) matcher() func(string) bool {
	switch f.mode {
	case MatchFold:
		return func(k string) bool { return strings.EqualFold(k, f.key) }
	case MatchSnake:
		target := strcase.ToSnake(f.key)
		return func(k string) bool { return strcase.ToSnake(k) == target }
	default:
		return func(k string) bool { return k == f.key }
	}
}

// Find returns the text of the value bound to the first matching key, or false
// when no object in the tree has the key.
func (f *Finder) Find(root models.Value) (string, bool) {
	f.result, f.found = "", false
	if root != nil {
		root.Accept(f)
	}
	return f.result, f.found
}

// VisitObject checks every entry in order and descends into containers.
func (f *Finder) VisitObject(o *models.Object) {
	o.Range(func(key string, value models.Value) bool {
		if f.match(key) {
			f.result, f.found = value.Text(), true
			return false
		}
		value.Accept(f)
		return !f.found
	})
}

// VisitArray searches the object elements of a, in order.
func (f *Finder) VisitArray(a *models.Array) {
	elems := arrayElements{f}
	for _, item := range a.Items {
		item.Accept(elems)
		if f.found {
			return
		}
	}
}

// VisitScalar does nothing: scalars have no keys.
func (f *Finder) VisitScalar(models.Value) {}

// arrayElements restricts the search to objects held directly by an array.
type arrayElements struct {
	f *Finder
}

func (e arrayElements) VisitObject(o *models.Object) { e.f.VisitObject(o) }
func (e arrayElements) VisitArray(*models.Array)     {}
func (e arrayElements) VisitScalar(models.Value)     {}

// FindFirst returns the text of the value bound to the first key in root that
// equals key exactly.
func FindFirst(root models.Value, key string) (string, bool) {
	return NewFinder(key).Find(root)
}

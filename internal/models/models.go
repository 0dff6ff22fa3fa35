package models

import (
	"strconv"
	"strings"
)

// Kind identifies which variant of the JSON value union a Value holds.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is a decoded JSON value: an object, array, string, number, boolean or null.
type Value interface {
	Kind() Kind
	// Text renders the value the way it is fed into the token hash.
	Text() string
	// Accept dispatches to the Visitor method matching the variant.
	Accept(v Visitor)
}

// Visitor walks a Value tree. Scalars (string, number, bool, null) share VisitScalar.
type Visitor interface {
	VisitObject(o *Object)
	VisitArray(a *Array)
	VisitScalar(v Value)
}

// Object is a JSON object that remembers the order its keys were first set in.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set binds key to value. An existing key keeps its position.
func (o *Object) Set(key string, value Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value bound to key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// Range calls fn for every entry in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, value Value) bool) {
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

func (o *Object) Kind() Kind       { return KindObject }
func (o *Object) Accept(v Visitor) { v.VisitObject(o) }

// Text renders the object as {key=value, ...}.
func (o *Object) Text() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(o.values[k].Text())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Array is an ordered JSON array.
type Array struct {
	Items []Value
}

// NewArray creates an empty Array.
func NewArray() *Array {
	return &Array{}
}

// Append adds value to the end of the array.
func (a *Array) Append(value Value) {
	a.Items = append(a.Items, value)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.Items)
}

func (a *Array) Kind() Kind       { return KindArray }
func (a *Array) Accept(v Visitor) { v.VisitArray(a) }

// Text renders the array as [a, b, ...].
func (a *Array) Text() string {
	parts := make([]string, len(a.Items))
	for i, item := range a.Items {
		parts[i] = item.Text()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// String is a JSON string.
type String string

func (s String) Kind() Kind       { return KindString }
func (s String) Text() string     { return string(s) }
func (s String) Accept(v Visitor) { v.VisitScalar(s) }

// Number is a JSON number. Literals written with a decimal point are floats,
// everything else is an integer.
type Number struct {
	Int     int64
	Float   float64
	IsFloat bool
}

// IntNumber creates an integer Number.
func IntNumber(i int64) Number {
	return Number{Int: i}
}

// FloatNumber creates a floating Number.
func FloatNumber(f float64) Number {
	return Number{Float: f, IsFloat: true}
}

func (n Number) Kind() Kind       { return KindNumber }
func (n Number) Accept(v Visitor) { v.VisitScalar(n) }

// Text renders integers plainly and floats in their shortest form, always
// keeping a decimal point (1.0, 3.14).
func (n Number) Text() string {
	if !n.IsFloat {
		return strconv.FormatInt(n.Int, 10)
	}
	s := strconv.FormatFloat(n.Float, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Bool is a JSON boolean.
type Bool bool

func (b Bool) Kind() Kind       { return KindBool }
func (b Bool) Text() string     { return strconv.FormatBool(bool(b)) }
func (b Bool) Accept(v Visitor) { v.VisitScalar(b) }

// Null is an explicit JSON null, as opposed to a missing key.
type Null struct{}

func (Null) Kind() Kind         { return KindNull }
func (Null) Text() string       { return "null" }
func (n Null) Accept(v Visitor) { v.VisitScalar(n) }

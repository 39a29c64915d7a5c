package cypher

import (
	"strings"

	"github.com/matzehuels/cygraph/pkg/errors"
)

// Tag declares how a column's cells are decoded.
// The set is closed: four scalar tags and their array forms.
type Tag string

// Scalar type tags.
const (
	TagInt    Tag = "int"
	TagFloat  Tag = "float"
	TagString Tag = "string"
	TagBool   Tag = "boolean"
)

// Array type tags.
const (
	TagIntArray    Tag = "int[]"
	TagFloatArray  Tag = "float[]"
	TagStringArray Tag = "string[]"
	TagBoolArray   Tag = "boolean[]"
)

// ArrayDelimiter joins array elements inside a single cell. It is reserved:
// element content containing it cannot be represented faithfully.
const ArrayDelimiter = ";"

// ParseTag validates a header type tag.
// Unknown tags return a MALFORMED_HEADER error.
func ParseTag(s string) (Tag, error) {
	switch t := Tag(s); t {
	case TagInt, TagFloat, TagString, TagBool,
		TagIntArray, TagFloatArray, TagStringArray, TagBoolArray:
		return t, nil
	}
	return "", errors.New(errors.ErrCodeMalformedHeader, "unrecognized type tag %q", s)
}

// IsArray reports whether the tag is an array form.
func (t Tag) IsArray() bool { return strings.HasSuffix(string(t), "[]") }

// Elem returns the scalar tag of an array tag, or the tag itself.
func (t Tag) Elem() Tag {
	if t.IsArray() {
		return Tag(strings.TrimSuffix(string(t), "[]"))
	}
	return t
}

// Array returns the array form of a scalar tag.
func (t Tag) Array() Tag {
	if t.IsArray() {
		return t
	}
	return t + "[]"
}

// widen resolves a type conflict within one column to a single tag.
//
// The lattice: identical tags keep their tag, int and float widen to float
// (element-wise for arrays), two conflicting array tags widen to string[],
// and every other conflict - including array vs scalar - widens to string,
// the universal fallback.
func widen(a, b Tag) Tag {
	switch {
	case a == b:
		return a
	case a.IsArray() && b.IsArray():
		return widenScalar(a.Elem(), b.Elem()).Array()
	case a.IsArray() != b.IsArray():
		return TagString
	default:
		return widenScalar(a, b)
	}
}

func widenScalar(a, b Tag) Tag {
	if a == b {
		return a
	}
	if (a == TagInt && b == TagFloat) || (a == TagFloat && b == TagInt) {
		return TagFloat
	}
	return TagString
}

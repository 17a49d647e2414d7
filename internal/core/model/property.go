package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
)

// PropertyValue is a closed union of the value kinds a graph property can
// hold. Keeping the union closed keeps equality and merge behavior
// well-defined.
type PropertyValue struct {
	Kind   ValueKind `json:"kind"`
	Str    string    `json:"str,omitempty"`
	Num    float64   `json:"num,omitempty"`
	Bool   bool      `json:"bool,omitempty"`
}

func StringValue(s string) PropertyValue  { return PropertyValue{Kind: KindString, Str: s} }
func NumberValue(n float64) PropertyValue { return PropertyValue{Kind: KindNumber, Num: n} }
func BoolValue(b bool) PropertyValue      { return PropertyValue{Kind: KindBool, Bool: b} }
func NullValue() PropertyValue            { return PropertyValue{Kind: KindNull} }

// FromAny coerces a driver-level value into a PropertyValue. Unknown types
// fall back to their fmt representation as a string.
func FromAny(v interface{}) PropertyValue {
	switch t := v.(type) {
	case nil:
		return NullValue()
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case int:
		return NumberValue(float64(t))
	case int64:
		return NumberValue(float64(t))
	case float32:
		return NumberValue(float64(t))
	case float64:
		return NumberValue(t)
	default:
		return StringValue(fmt.Sprintf("%v", t))
	}
}

func (v PropertyValue) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

func (v PropertyValue) IsNull() bool {
	return v.Kind == KindNull
}

func (v PropertyValue) Equal(other PropertyValue) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindNumber:
		return v.Num == other.Num
	case KindBool:
		return v.Bool == other.Bool
	default:
		return true
	}
}

// EqualFold compares the string forms case-insensitively after trimming.
func (v PropertyValue) EqualFold(other PropertyValue) bool {
	return strings.EqualFold(strings.TrimSpace(v.String()), strings.TrimSpace(other.String()))
}

// Properties is a property map keyed by name. Iteration order is undefined;
// callers that need determinism iterate via SortedKeys.
type Properties map[string]PropertyValue

func SortedKeys(props Properties) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PropertiesFromAny materializes a driver attribute bag.
func PropertiesFromAny(raw map[string]interface{}) Properties {
	if len(raw) == 0 {
		return Properties{}
	}
	props := make(Properties, len(raw))
	for k, v := range raw {
		props[k] = FromAny(v)
	}
	return props
}

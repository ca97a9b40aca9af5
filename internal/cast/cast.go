package cast

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind enumerates the declared types a task parameter can carry.
// The set is deliberately closed: anything a task declares outside of it
// falls through the caster untouched.
type Kind int

const (
	// KindNone means the parameter carries no declared type.
	KindNone Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindList
)

// Type is the declared type of a task parameter. Elem is only meaningful
// when Kind is KindList and names the element type; list elements are
// always primitives, nested lists are not supported.
type Type struct {
	Kind Kind
	Elem Kind
}

// Convenience constructors for the common declared types.
var (
	None   = Type{Kind: KindNone}
	String = Type{Kind: KindString}
	Int    = Type{Kind: KindInt}
	Float  = Type{Kind: KindFloat}
	Bool   = Type{Kind: KindBool}
)

// ListOf returns a list type with the given element kind.
func ListOf(elem Kind) Type {
	return Type{Kind: KindList, Elem: elem}
}

// String renders the type the way it appears in flag help text and
// error messages, e.g. "int" or "list[bool]".
func (t Type) String() string {
	if t.Kind == KindList {
		return "list[" + kindName(t.Elem) + "]"
	}
	return kindName(t.Kind)
}

func kindName(k Kind) string {
	switch k {
	case KindNone:
		return "none"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// CastError is returned when a raw string cannot be converted to its
// declared primitive type. It is always user-facing.
type CastError struct {
	Value  string
	Type   Type
	Reason string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cannot cast %q to %s: %s", e.Value, e.Type, e.Reason)
}

// Cast converts a raw string value to the declared type. Parameters with
// no declared type, string-typed parameters, and parameters with a type
// outside the known set all pass through unchanged; the permissive
// fallback keeps tasks with opaque annotations invocable.
func Cast(raw string, t Type) (interface{}, error) {
	switch t.Kind {
	case KindNone, KindString:
		return raw, nil

	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &CastError{Value: raw, Type: t, Reason: "not a base-10 integer"}
		}
		return n, nil

	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &CastError{Value: raw, Type: t, Reason: "not a decimal number"}
		}
		return f, nil

	case KindBool:
		switch strings.ToLower(raw) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		default:
			return nil, &CastError{Value: raw, Type: t, Reason: "expected true/false/1/0/yes/no"}
		}

	case KindList:
		// Comma-separated elements, each trimmed and cast against the
		// element type. One level of recursion only: Elem is a Kind,
		// never another list.
		items := strings.Split(raw, ",")
		casted := make([]interface{}, 0, len(items))
		for _, item := range items {
			v, err := Cast(strings.TrimSpace(item), Type{Kind: t.Elem})
			if err != nil {
				return nil, err
			}
			casted = append(casted, v)
		}
		return casted, nil

	default:
		return raw, nil
	}
}

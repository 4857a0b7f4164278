package records

import (
	"reflect"
	"strconv"
	"strings"

	errx "github.com/hrnexus-poc/server/internal/core/error"
)

func recordName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().Name()
}

// Operator is the comparison applied between a field value and the raw
// search value supplied by the caller.
type Operator string

const (
	OpEquals       Operator = "equals"
	OpGreaterThan  Operator = "greater_than"
	OpLessThan     Operator = "less_than"
	OpGreaterEqual Operator = "greater_equal"
	OpLessEqual    Operator = "less_equal"
	OpContains     Operator = "contains"
)

// ParseOperator normalises an operator string from a tool call. An empty
// string defaults to equals; unrecognised operators pass through unchanged
// and simply match nothing, mirroring how the datasets behaved historically.
func ParseOperator(s string) Operator {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return OpEquals
	}
	return Operator(s)
}

// FieldTable maps a field name to its accessor for one record variant.
type FieldTable[T any] map[string]func(T) Value

// Search filters items by (fieldName, op, rawValue), preserving input order.
// It is a pure function over the in-memory snapshot: identical inputs always
// produce identical output ordering and membership.
//
// A rawValue that fails numeric parsing under an ordering operator excludes
// the record instead of failing the search; a malformed query therefore
// narrows the result set silently. That matches the behaviour the datasets
// have always had and downstream formatting depends on it.
func Search[T any](items []T, fields FieldTable[T], fieldName, rawValue string, op Operator) ([]T, error) {
	accessor, ok := fields[strings.TrimSpace(fieldName)]
	if !ok {
		return nil, &errx.FieldNotFoundError{Record: recordName[T](), Field: fieldName}
	}

	out := make([]T, 0)
	for _, item := range items {
		if matchValue(accessor(item), rawValue, op) {
			out = append(out, item)
		}
	}
	return out, nil
}

// matchValue evaluates one (Operator, Kind) pair. Unsupported combinations
// never match.
func matchValue(v Value, raw string, op Operator) bool {
	switch op {
	case OpEquals:
		return matchEquals(v, raw)
	case OpGreaterThan, OpLessThan, OpGreaterEqual, OpLessEqual:
		return matchNumeric(v, raw, op)
	case OpContains:
		return matchContains(v, raw)
	default:
		return false
	}
}

func matchEquals(v Value, raw string) bool {
	switch v.Kind {
	case KindString:
		return strings.EqualFold(v.Str, raw)
	case KindStringList:
		for _, item := range v.List {
			if strings.EqualFold(item, raw) {
				return true
			}
		}
		return false
	case KindInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		return err == nil && v.Int == n
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		return err == nil && v.Float == f
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		return err == nil && v.Bool == b
	default:
		// object lists have no meaningful equality against a scalar
		return false
	}
}

func matchNumeric(v Value, raw string, op Operator) bool {
	var fieldVal float64
	switch v.Kind {
	case KindInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return false
		}
		return compareInt(v.Int, n, op)
	case KindFloat:
		fieldVal = v.Float
	default:
		return false
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return false
	}
	return compareFloat(fieldVal, f, op)
}

func compareInt(a, b int, op Operator) bool {
	switch op {
	case OpGreaterThan:
		return a > b
	case OpLessThan:
		return a < b
	case OpGreaterEqual:
		return a >= b
	case OpLessEqual:
		return a <= b
	}
	return false
}

func compareFloat(a, b float64, op Operator) bool {
	switch op {
	case OpGreaterThan:
		return a > b
	case OpLessThan:
		return a < b
	case OpGreaterEqual:
		return a >= b
	case OpLessEqual:
		return a <= b
	}
	return false
}

func matchContains(v Value, raw string) bool {
	needle := strings.ToLower(raw)
	switch v.Kind {
	case KindString:
		return strings.Contains(strings.ToLower(v.Str), needle)
	case KindStringList, KindObjectList:
		for _, item := range v.List {
			if strings.Contains(strings.ToLower(item), needle) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

package records

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the runtime shape of a record field value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindStringList
	// KindObjectList covers nested object lists (burndown entries, action
	// items). Searchable only through Contains against the stringified form.
	KindObjectList
)

// Value is the tagged union every field accessor returns. Operator logic in
// search.go matches on (Operator, Kind) pairs and never touches the native
// struct fields directly.
type Value struct {
	Kind  Kind
	Str   string
	Int   int
	Float float64
	Bool  bool
	List  []string
}

func String(s string) Value       { return Value{Kind: KindString, Str: s} }
func Int(n int) Value             { return Value{Kind: KindInt, Int: n} }
func Float(f float64) Value       { return Value{Kind: KindFloat, Float: f} }
func Bool(b bool) Value           { return Value{Kind: KindBool, Bool: b} }
func StringList(l []string) Value { return Value{Kind: KindStringList, List: l} }

// ObjectList stringifies each element so Contains can match against it.
func ObjectList[T any](items []T) Value {
	list := make([]string, 0, len(items))
	for _, it := range items {
		b, err := json.Marshal(it)
		if err != nil {
			list = append(list, fmt.Sprint(it))
			continue
		}
		list = append(list, string(b))
	}
	return Value{Kind: KindObjectList, List: list}
}

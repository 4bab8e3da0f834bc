package writer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Column binds one table column to a typed array parameter built from the rows.
type Column[T any] struct {
	name      string
	arrayType string
	cast      string
	values    func(rows []T) any
}

func Text[T any](name string, get func(T) string) Column[T] {
	return Column[T]{name: name, arrayType: "text[]", values: func(rows []T) any {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = get(r)
		}
		return out
	}}
}

func NullText[T any](name string, get func(T) *string) Column[T] {
	return Column[T]{name: name, arrayType: "text[]", values: func(rows []T) any {
		out := make([]*string, len(rows))
		for i, r := range rows {
			out[i] = get(r)
		}
		return out
	}}
}

func BigInt[T any](name string, get func(T) int64) Column[T] {
	return Column[T]{name: name, arrayType: "bigint[]", values: func(rows []T) any {
		out := make([]int64, len(rows))
		for i, r := range rows {
			out[i] = get(r)
		}
		return out
	}}
}

func Bool[T any](name string, get func(T) bool) Column[T] {
	return Column[T]{name: name, arrayType: "boolean[]", values: func(rows []T) any {
		out := make([]bool, len(rows))
		for i, r := range rows {
			out[i] = get(r)
		}
		return out
	}}
}

// Numeric sends decimals as text and casts them server side to keep full precision.
func Numeric[T any](name string, get func(T) decimal.Decimal) Column[T] {
	return Column[T]{name: name, arrayType: "text[]", cast: "numeric", values: func(rows []T) any {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = get(r).String()
		}
		return out
	}}
}

// Date takes YYYY-MM-DD strings.
func Date[T any](name string, get func(T) string) Column[T] {
	c := Text(name, get)
	c.cast = "date"
	return c
}

// JSONB stores raw JSON; empty input becomes NULL.
func JSONB[T any](name string, get func(T) []byte) Column[T] {
	return Column[T]{name: name, arrayType: "text[]", cast: "jsonb", values: func(rows []T) any {
		out := make([]*string, len(rows))
		for i, r := range rows {
			if b := get(r); len(b) > 0 {
				s := string(b)
				out[i] = &s
			}
		}
		return out
	}}
}

// Table describes an insert of T rows keyed by a natural key.
type Table[T any] struct {
	Name    string
	Columns []Column[T]
	Key     []string
	// Accumulate lists columns added to the stored value on conflict.
	// Without it conflicting rows are ignored.
	Accumulate []string
}

// Statement renders a single INSERT ... SELECT FROM unnest(...) for rows, one array per column.
func (t Table[T]) Statement(rows []T) (string, []any) {
	names := make([]string, len(t.Columns))
	selects := make([]string, len(t.Columns))
	params := make([]string, len(t.Columns))
	args := make([]any, len(t.Columns))

	for i, c := range t.Columns {
		names[i] = c.name
		selects[i] = "u." + c.name
		if c.cast != "" {
			selects[i] += "::" + c.cast
		}
		params[i] = fmt.Sprintf("$%d::%s", i+1, c.arrayType)
		args[i] = c.values(rows)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s AS t (%s)\n", t.Name, strings.Join(names, ", "))
	fmt.Fprintf(&b, "SELECT %s\n", strings.Join(selects, ", "))
	fmt.Fprintf(&b, "FROM unnest(%s) AS u(%s)\n", strings.Join(params, ", "), strings.Join(names, ", "))
	fmt.Fprintf(&b, "ON CONFLICT (%s) ", strings.Join(t.Key, ", "))

	if len(t.Accumulate) == 0 {
		b.WriteString("DO NOTHING")
		return b.String(), args
	}

	sets := make([]string, len(t.Accumulate))
	for i, col := range t.Accumulate {
		sets[i] = fmt.Sprintf("%s = t.%s + EXCLUDED.%s", col, col, col)
	}
	fmt.Fprintf(&b, "DO UPDATE SET %s", strings.Join(sets, ", "))
	return b.String(), args
}

// Package record is the generic CRUD layer every adapter talks to: named
// tables, field projection, equality filters and per-record batch results.
package record

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Client is the record store boundary. Implementations report logical
// failures through Response.Success / Result.Success and reserve the error
// return for transport problems.
type Client interface {
	FetchRecords(ctx context.Context, table string, q Query) (*Response, error)
	GetRecordByID(ctx context.Context, table string, id int64, q Query) (*Response, error)
	CreateRecord(ctx context.Context, table string, records []Fields) (*Response, error)
	UpdateRecord(ctx context.Context, table string, records []Fields) (*Response, error)
	DeleteRecord(ctx context.Context, table string, ids []int64) (*Response, error)
}

const (
	// IDField and NameField are present on every table.
	IDField   = "Id"
	NameField = "Name"
)

// Fields is the wire shape of a record sent to the store.
type Fields map[string]any

// Compact returns a copy without nil or empty-string values so partial
// writes never clear a column server side.
func (f Fields) Compact() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if isEmpty(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case *string:
		return t == nil || *t == ""
	}
	return false
}

// Field selects a column. A non-empty Reference asks the store to expand the
// referenced record and return that column of it.
type Field struct {
	Name      string
	Reference string
}

// Col selects a plain column.
func Col(name string) Field { return Field{Name: name} }

// RefCol selects column ref of the record referenced by name.
func RefCol(name, ref string) Field { return Field{Name: name, Reference: ref} }

type Operator string

const EqualTo Operator = "EqualTo"

type Condition struct {
	FieldName string
	Operator  Operator
	Values    []any
}

// Eq builds an EqualTo condition.
func Eq(field string, values ...any) Condition {
	return Condition{FieldName: field, Operator: EqualTo, Values: values}
}

// Query is a projection plus a conjunction of conditions. An empty Fields
// list selects every column without reference expansion.
type Query struct {
	Fields []Field
	Where  []Condition
}

// Expanded reports whether the query asks for field name to be resolved.
func (q Query) Expanded(name string) bool {
	for _, f := range q.Fields {
		if f.Name == name && f.Reference != "" {
			return true
		}
	}
	return false
}

// References returns the referenced columns requested for name.
func (q Query) References(name string) []string {
	var out []string
	for _, f := range q.Fields {
		if f.Name == name && f.Reference != "" {
			out = append(out, f.Reference)
		}
	}
	return out
}

// Ref is a foreign key as returned by the store. Resolved is decided by the
// query shape: it is true only when the field was projected with a Reference,
// in which case Fields holds the requested referenced columns. A store that
// answers an expanded column with a bare id yields an unresolved Ref.
type Ref struct {
	ID       int64
	Resolved bool
	Fields   map[string]string
}

// Record is a row read back from the store.
type Record struct {
	ID     int64
	Name   string
	Fields Fields
	Refs   map[string]Ref
}

// String returns a column as text; absent or null columns yield "".
func (r Record) String(key string) string {
	return AsString(r.Fields[key])
}

// Int returns a numeric column; absent or non-numeric columns yield 0.
func (r Record) Int(key string) int64 {
	return AsInt(r.Fields[key])
}

// Has reports whether the column is present and non-empty.
func (r Record) Has(key string) bool {
	v, ok := r.Fields[key]
	return ok && !isEmpty(v)
}

func (r *Record) setRef(name string, ref Ref) {
	if r.Refs == nil {
		r.Refs = map[string]Ref{}
	}
	r.Refs[name] = ref
}

// Reference returns the foreign key stored under name, resolved or not.
func (r Record) Reference(name string) Ref {
	if ref, ok := r.Refs[name]; ok {
		return ref
	}
	return Ref{ID: r.Int(name)}
}

// CodeDuplicate marks a write rejected by a uniqueness rule.
const CodeDuplicate = "DUPLICATE_VALUE"

// Result is the per-record outcome of a batch write.
type Result struct {
	Success bool
	Code    string
	Message string
	Data    *Record
}

// Response mirrors the store's envelope.
type Response struct {
	Success bool
	Message string
	Data    []Record
	Results []Result
}

// BackendError carries a logical failure reported by the store.
type BackendError struct {
	Op      string
	Table   string
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// AsString renders a scalar column value as text.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int, int32, int64, bool:
		return fmt.Sprint(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// AsInt coerces a column value to an integer the way the store's loosely
// typed columns require.
func AsInt(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case float64:
		return int64(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			f, _ := t.Float64()
			return int64(f)
		}
		return n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// normalize maps numerically equal values onto the same key so filters
// match regardless of which layer decoded the number.
func normalize(v any) string {
	switch t := v.(type) {
	case int, int32, int64, float64, json.Number:
		return strconv.FormatInt(AsInt(t), 10)
	}
	return AsString(v)
}

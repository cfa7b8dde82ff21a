package record

import (
	"fmt"
	"regexp"
)

// Schema describes what the self-hosted backends need to know about the
// tables: which columns point at other tables and which must be unique.
type Schema struct {
	// References maps table -> column -> referenced table.
	References map[string]map[string]string
	// Unique maps table -> columns whose values may appear at most once.
	Unique map[string][]string
}

func (s Schema) target(table, column string) (string, bool) {
	t, ok := s.References[table][column]
	return t, ok
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validIdent(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

// row is a stored record before projection.
type row struct {
	id     int64
	name   string
	fields Fields
}

func (r row) record() Record {
	fields := make(Fields, len(r.fields))
	for k, v := range r.fields {
		fields[k] = v
	}
	return Record{ID: r.id, Name: r.name, Fields: fields}
}

func (r row) value(column string) any {
	switch column {
	case IDField:
		return r.id
	case NameField:
		return r.name
	}
	return r.fields[column]
}

func (r row) matches(where []Condition) bool {
	for _, c := range where {
		got := normalize(r.value(c.FieldName))
		hit := false
		for _, v := range c.Values {
			if normalize(v) == got {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// lookupFunc loads referenced rows keyed by id.
type lookupFunc func(table string, ids []int64) (map[int64]row, error)

// project applies q to rows, expanding references through lookup.
func project(schema Schema, table string, q Query, rows []row, lookup lookupFunc) ([]Record, error) {
	out := make([]Record, 0, len(rows))
	if len(q.Fields) == 0 {
		for _, r := range rows {
			out = append(out, r.record())
		}
		return out, nil
	}

	// Resolve every expanded column with one lookup per target table.
	resolved := map[string]map[int64]row{}
	for _, f := range q.Fields {
		if f.Reference == "" {
			continue
		}
		if _, done := resolved[f.Name]; done {
			continue
		}
		target, ok := schema.target(table, f.Name)
		if !ok {
			return nil, fmt.Errorf("%s.%s is not a reference column", table, f.Name)
		}
		ids := make([]int64, 0, len(rows))
		for _, r := range rows {
			if id := AsInt(r.fields[f.Name]); id != 0 {
				ids = append(ids, id)
			}
		}
		refs, err := lookup(target, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", f.Name, err)
		}
		resolved[f.Name] = refs
	}

	for _, r := range rows {
		rec := Record{ID: r.id, Fields: Fields{}}
		for _, f := range q.Fields {
			switch {
			case f.Name == IDField:
			case f.Name == NameField:
				rec.Name = r.name
			case f.Reference != "":
				id := AsInt(r.fields[f.Name])
				if id == 0 {
					continue
				}
				if rec.Refs == nil {
					rec.Refs = map[string]Ref{}
				}
				ref, ok := rec.Refs[f.Name]
				if !ok {
					ref = Ref{ID: id, Resolved: true, Fields: map[string]string{}}
				}
				if target, found := resolved[f.Name][id]; found {
					ref.Fields[f.Reference] = AsString(target.value(f.Reference))
				}
				rec.Refs[f.Name] = ref
			default:
				if v, ok := r.fields[f.Name]; ok {
					rec.Fields[f.Name] = v
				}
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

package record

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemStore is an in-process Client used for local development and tests.
// Unique columns from the schema are checked under the same lock as the
// insert, so concurrent duplicate creates cannot both succeed.
type MemStore struct {
	mu     sync.RWMutex
	schema Schema
	tables map[string]map[int64]row
	nextID int64
}

var _ Client = (*MemStore)(nil)

func NewMemStore(schema Schema) *MemStore {
	return &MemStore{
		schema: schema,
		tables: map[string]map[int64]row{},
	}
}

func (m *MemStore) sorted(table string) []row {
	rows := make([]row, 0, len(m.tables[table]))
	for _, r := range m.tables[table] {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].id < rows[j].id })
	return rows
}

func (m *MemStore) lookup(table string, ids []int64) (map[int64]row, error) {
	out := make(map[int64]row, len(ids))
	for _, id := range ids {
		if r, ok := m.tables[table][id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func (m *MemStore) FetchRecords(ctx context.Context, table string, q Query) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rows []row
	for _, r := range m.sorted(table) {
		if r.matches(q.Where) {
			rows = append(rows, r)
		}
	}
	data, err := project(m.schema, table, q, rows, m.lookup)
	if err != nil {
		return &Response{Success: false, Message: err.Error()}, nil
	}
	return &Response{Success: true, Data: data}, nil
}

func (m *MemStore) GetRecordByID(ctx context.Context, table string, id int64, q Query) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.tables[table][id]
	if !ok {
		return &Response{Success: true}, nil
	}
	data, err := project(m.schema, table, q, []row{r}, m.lookup)
	if err != nil {
		return &Response{Success: false, Message: err.Error()}, nil
	}
	return &Response{Success: true, Data: data}, nil
}

func (m *MemStore) CreateRecord(ctx context.Context, table string, records []Fields) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tables[table] == nil {
		m.tables[table] = map[int64]row{}
	}
	resp := &Response{Success: true}
	for _, f := range records {
		r := toRow(0, f)
		if col, dup := m.duplicate(table, r); dup {
			resp.Results = append(resp.Results, Result{
				Success: false,
				Code:    CodeDuplicate,
				Message: fmt.Sprintf("duplicate value for %s", col),
			})
			continue
		}
		m.nextID++
		r.id = m.nextID
		m.tables[table][r.id] = r
		rec := r.record()
		resp.Results = append(resp.Results, Result{Success: true, Data: &rec})
	}
	return resp, nil
}

func (m *MemStore) UpdateRecord(ctx context.Context, table string, records []Fields) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	resp := &Response{Success: true}
	for _, f := range records {
		id := AsInt(f[IDField])
		cur, ok := m.tables[table][id]
		if !ok {
			resp.Results = append(resp.Results, Result{Success: false, Message: fmt.Sprintf("record %d not found", id)})
			continue
		}
		patch := toRow(id, f)
		next := row{id: id, name: cur.name, fields: Fields{}}
		for k, v := range cur.fields {
			next.fields[k] = v
		}
		for k, v := range patch.fields {
			next.fields[k] = v
		}
		if patch.name != "" {
			next.name = patch.name
		}
		if col, dup := m.duplicate(table, next); dup {
			resp.Results = append(resp.Results, Result{Success: false, Code: CodeDuplicate, Message: fmt.Sprintf("duplicate value for %s", col)})
			continue
		}
		m.tables[table][id] = next
		rec := next.record()
		resp.Results = append(resp.Results, Result{Success: true, Data: &rec})
	}
	return resp, nil
}

func (m *MemStore) DeleteRecord(ctx context.Context, table string, ids []int64) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	resp := &Response{Success: true}
	for _, id := range ids {
		if _, ok := m.tables[table][id]; !ok {
			resp.Results = append(resp.Results, Result{Success: false, Message: fmt.Sprintf("record %d not found", id)})
			continue
		}
		delete(m.tables[table], id)
		resp.Results = append(resp.Results, Result{Success: true, Data: &Record{ID: id}})
	}
	return resp, nil
}

// duplicate reports the first unique column r collides on. Caller holds the lock.
func (m *MemStore) duplicate(table string, r row) (string, bool) {
	for _, col := range m.schema.Unique[table] {
		v, ok := r.fields[col]
		if !ok || isEmpty(v) {
			continue
		}
		want := normalize(v)
		for _, other := range m.tables[table] {
			if other.id != r.id && normalize(other.fields[col]) == want {
				return col, true
			}
		}
	}
	return "", false
}

func toRow(id int64, f Fields) row {
	r := row{id: id, fields: Fields{}}
	for k, v := range f {
		switch k {
		case IDField:
		case NameField:
			r.name = AsString(v)
		default:
			r.fields[k] = v
		}
	}
	return r
}

package record

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the store needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore keeps every table in one jsonb-backed relation. Uniqueness from the
// schema is enforced by partial unique indexes created in Migrate.
type PGStore struct {
	db     DBTX
	schema Schema
}

var _ Client = (*PGStore)(nil)

func NewPGStore(db DBTX, schema Schema) *PGStore {
	return &PGStore{db: db, schema: schema}
}

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS records (
	id         BIGSERIAL PRIMARY KEY,
	table_name TEXT NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	fields     JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const createRecordsIndex = `CREATE INDEX IF NOT EXISTS records_table_name_idx ON records (table_name, id)`

// MigrationStatements returns the DDL Migrate runs, in order.
func (s *PGStore) MigrationStatements() ([]string, error) {
	stmts := []string{createRecordsTable, createRecordsIndex}
	for table, cols := range s.schema.Unique {
		if err := validIdent(table); err != nil {
			return nil, err
		}
		for _, col := range cols {
			if err := validIdent(col); err != nil {
				return nil, err
			}
			stmts = append(stmts, fmt.Sprintf(
				`CREATE UNIQUE INDEX IF NOT EXISTS %s_%s_uniq ON records ((fields->>'%s')) WHERE table_name = '%s'`,
				table, col, col, table))
		}
	}
	return stmts, nil
}

// Migrate creates the records relation and its unique indexes.
func (s *PGStore) Migrate(ctx context.Context) error {
	stmts, err := s.MigrationStatements()
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate records: %w", err)
		}
	}
	return nil
}

// buildSelect renders the filter for a table; values are compared as text
// so numeric ids match whichever way they were written.
func buildSelect(table string, where []Condition) (string, []any, error) {
	var b strings.Builder
	b.WriteString(`SELECT id, name, fields FROM records WHERE table_name = $1`)
	args := []any{table}
	for _, c := range where {
		if c.Operator != EqualTo {
			return "", nil, fmt.Errorf("unsupported operator %q", c.Operator)
		}
		values := make([]string, len(c.Values))
		for i, v := range c.Values {
			values[i] = normalize(v)
		}
		switch c.FieldName {
		case IDField:
			fmt.Fprintf(&b, " AND id::text = ANY($%d)", len(args)+1)
			args = append(args, values)
		case NameField:
			fmt.Fprintf(&b, " AND name = ANY($%d)", len(args)+1)
			args = append(args, values)
		default:
			if err := validIdent(c.FieldName); err != nil {
				return "", nil, err
			}
			fmt.Fprintf(&b, " AND fields->>$%d = ANY($%d)", len(args)+1, len(args)+2)
			args = append(args, c.FieldName, values)
		}
	}
	b.WriteString(" ORDER BY id")
	return b.String(), args, nil
}

func scanRows(rows pgx.Rows) ([]row, error) {
	defer rows.Close()
	var out []row
	for rows.Next() {
		var r row
		var fields map[string]any
		if err := rows.Scan(&r.id, &r.name, &fields); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.fields = Fields(fields)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (s *PGStore) lookup(ctx context.Context) lookupFunc {
	return func(table string, ids []int64) (map[int64]row, error) {
		out := map[int64]row{}
		if len(ids) == 0 {
			return out, nil
		}
		rows, err := s.db.Query(ctx,
			`SELECT id, name, fields FROM records WHERE table_name = $1 AND id = ANY($2)`, table, ids)
		if err != nil {
			return nil, fmt.Errorf("query references: %w", err)
		}
		found, err := scanRows(rows)
		if err != nil {
			return nil, err
		}
		for _, r := range found {
			out[r.id] = r
		}
		return out, nil
	}
}

func (s *PGStore) FetchRecords(ctx context.Context, table string, q Query) (*Response, error) {
	sql, args, err := buildSelect(table, q.Where)
	if err != nil {
		return &Response{Success: false, Message: err.Error()}, nil
	}
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	found, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	data, err := project(s.schema, table, q, found, s.lookup(ctx))
	if err != nil {
		return nil, err
	}
	return &Response{Success: true, Data: data}, nil
}

func (s *PGStore) GetRecordByID(ctx context.Context, table string, id int64, q Query) (*Response, error) {
	var r row
	var fields map[string]any
	err := s.db.QueryRow(ctx,
		`SELECT id, name, fields FROM records WHERE table_name = $1 AND id = $2`, table, id,
	).Scan(&r.id, &r.name, &fields)
	if errors.Is(err, pgx.ErrNoRows) {
		return &Response{Success: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", table, id, err)
	}
	r.fields = Fields(fields)
	data, err := project(s.schema, table, q, []row{r}, s.lookup(ctx))
	if err != nil {
		return nil, err
	}
	return &Response{Success: true, Data: data}, nil
}

// writeFailure turns constraint violations into per-record failures and
// passes everything else through as a transport error.
func writeFailure(err error) (Result, error) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return Result{Success: false, Code: CodeDuplicate, Message: "duplicate value violates " + pgErr.ConstraintName}, nil
	}
	return Result{}, err
}

func (s *PGStore) CreateRecord(ctx context.Context, table string, records []Fields) (*Response, error) {
	resp := &Response{Success: true}
	for _, f := range records {
		in := toRow(0, f)
		var r row
		var fields map[string]any
		err := s.db.QueryRow(ctx,
			`INSERT INTO records (table_name, name, fields) VALUES ($1, $2, $3) RETURNING id, name, fields`,
			table, in.name, map[string]any(in.fields),
		).Scan(&r.id, &r.name, &fields)
		if err != nil {
			res, ferr := writeFailure(err)
			if ferr != nil {
				return nil, fmt.Errorf("insert %s: %w", table, ferr)
			}
			resp.Results = append(resp.Results, res)
			continue
		}
		r.fields = Fields(fields)
		rec := r.record()
		resp.Results = append(resp.Results, Result{Success: true, Data: &rec})
	}
	return resp, nil
}

func (s *PGStore) UpdateRecord(ctx context.Context, table string, records []Fields) (*Response, error) {
	resp := &Response{Success: true}
	for _, f := range records {
		id := AsInt(f[IDField])
		in := toRow(id, f)
		var r row
		var fields map[string]any
		err := s.db.QueryRow(ctx, `
UPDATE records
SET fields = fields || $1::jsonb,
	name = COALESCE(NULLIF($2, ''), name),
	updated_at = now()
WHERE table_name = $3 AND id = $4
RETURNING id, name, fields`,
			map[string]any(in.fields), in.name, table, id,
		).Scan(&r.id, &r.name, &fields)
		if errors.Is(err, pgx.ErrNoRows) {
			resp.Results = append(resp.Results, Result{Success: false, Message: fmt.Sprintf("record %d not found", id)})
			continue
		}
		if err != nil {
			res, ferr := writeFailure(err)
			if ferr != nil {
				return nil, fmt.Errorf("update %s %d: %w", table, id, ferr)
			}
			resp.Results = append(resp.Results, res)
			continue
		}
		r.fields = Fields(fields)
		rec := r.record()
		resp.Results = append(resp.Results, Result{Success: true, Data: &rec})
	}
	return resp, nil
}

func (s *PGStore) DeleteRecord(ctx context.Context, table string, ids []int64) (*Response, error) {
	rows, err := s.db.Query(ctx,
		`DELETE FROM records WHERE table_name = $1 AND id = ANY($2) RETURNING id`, table, ids)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", table, err)
	}
	deleted := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan deleted id: %w", err)
		}
		deleted[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	resp := &Response{Success: true}
	for _, id := range ids {
		if !deleted[id] {
			resp.Results = append(resp.Results, Result{Success: false, Message: fmt.Sprintf("record %d not found", id)})
			continue
		}
		resp.Results = append(resp.Results, Result{Success: true, Data: &Record{ID: id}})
	}
	return resp, nil
}

package record

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore connects to TEST_DATABASE_URL; tests are skipped without it.
func setupTestStore(t *testing.T) *PGStore {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS records`)
	require.NoError(t, err)

	s := NewPGStore(pool, testSchema())
	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestBuildSelect(t *testing.T) {
	sql, args, err := buildSelect("application_c", []Condition{Eq("job_id_c", 42), Eq("Id", int64(3))})
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT id, name, fields FROM records WHERE table_name = $1 AND fields->>$2 = ANY($3) AND id::text = ANY($4) ORDER BY id`,
		sql)
	assert.Equal(t, []any{"application_c", "job_id_c", []string{"42"}, []string{"3"}}, args)

	_, _, err = buildSelect("job_c", []Condition{Eq("bad field;", "x")})
	assert.Error(t, err)

	_, _, err = buildSelect("job_c", []Condition{{FieldName: "a", Operator: "Contains"}})
	assert.Error(t, err)
}

func TestMigrationStatements(t *testing.T) {
	s := NewPGStore(nil, testSchema())
	stmts, err := s.MigrationStatements()
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[2], "saved_job_c_job_id_c_uniq")
	assert.Contains(t, stmts[2], "WHERE table_name = 'saved_job_c'")
}

func TestPGStore_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	job := mustCreate(t, s, "job_c", Fields{"Name": "SRE", "title_c": "SRE", "company_c": "Acme"})
	mustCreate(t, s, "application_c", Fields{"email_c": "a@x.com", "job_id_c": job.ID})

	resp, err := s.FetchRecords(ctx, "application_c", Query{
		Fields: []Field{Col("email_c"), RefCol("job_id_c", "title_c")},
		Where:  []Condition{Eq("job_id_c", job.ID)},
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "SRE", resp.Data[0].Reference("job_id_c").Fields["title_c"])

	upd, err := s.UpdateRecord(ctx, "job_c", []Fields{{"Id": job.ID, "status_c": "closed"}})
	require.NoError(t, err)
	require.True(t, upd.Results[0].Success)
	assert.Equal(t, "closed", upd.Results[0].Data.String("status_c"))
	assert.Equal(t, "SRE", upd.Results[0].Data.String("title_c"))
}

func TestPGStore_UniqueSavedJob(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	mustCreate(t, s, "saved_job_c", Fields{"job_id_c": int64(11)})
	resp, err := s.CreateRecord(ctx, "saved_job_c", []Fields{{"job_id_c": int64(11)}})
	require.NoError(t, err)
	assert.False(t, resp.Results[0].Success)

	del, err := s.DeleteRecord(ctx, "saved_job_c", []int64{12345})
	require.NoError(t, err)
	assert.False(t, del.Results[0].Success)
}

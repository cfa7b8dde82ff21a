package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsCompact(t *testing.T) {
	var nilStr *string
	empty := ""
	f := Fields{
		"title_c":        "Go Engineer",
		"salary_range_c": "",
		"industry_c":     nil,
		"location_c":     nilStr,
		"company_c":      &empty,
		"count_c":        0,
	}

	got := f.Compact()

	assert.Equal(t, Fields{"title_c": "Go Engineer", "count_c": 0}, got)
	assert.Len(t, f, 6, "Compact must not mutate the receiver")
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"int", 7, 7},
		{"int64", int64(42), 42},
		{"float", float64(42), 42},
		{"json number", json.Number("13"), 13},
		{"numeric string", " 9 ", 9},
		{"garbage", "abc", 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsInt(tt.in))
		})
	}
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "", AsString(nil))
	assert.Equal(t, "42", AsString(float64(42)))
	assert.Equal(t, "1.5", AsString(1.5))
	assert.Equal(t, "17", AsString(json.Number("17")))
	assert.Equal(t, `{"type":"offer"}`, AsString(map[string]any{"type": "offer"}))
}

func TestRecordReference(t *testing.T) {
	bare := Record{Fields: Fields{"job_id_c": float64(42)}}
	assert.Equal(t, Ref{ID: 42}, bare.Reference("job_id_c"))

	expanded := Record{
		Fields: Fields{},
		Refs: map[string]Ref{
			"job_id_c": {ID: 42, Resolved: true, Fields: map[string]string{"title_c": "SRE"}},
		},
	}
	ref := expanded.Reference("job_id_c")
	assert.True(t, ref.Resolved)
	assert.Equal(t, "SRE", ref.Fields["title_c"])
}

func TestQueryExpanded(t *testing.T) {
	q := Query{Fields: []Field{
		Col("Id"),
		RefCol("job_id_c", "title_c"),
		RefCol("job_id_c", "company_c"),
	}}
	assert.True(t, q.Expanded("job_id_c"))
	assert.False(t, q.Expanded("Id"))
	assert.Equal(t, []string{"title_c", "company_c"}, q.References("job_id_c"))
}

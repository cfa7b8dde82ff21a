package record

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HTTPClient talks to the hosted record service.
type HTTPClient struct {
	apiKey string
	base   string
	http   *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		apiKey: apiKey,
		base:   baseURL,
		http:   &http.Client{Timeout: timeout},
	}
}

type wireFieldName struct {
	Name string `json:"Name"`
}

type wireField struct {
	Field          wireFieldName `json:"field"`
	ReferenceField *struct {
		Field wireFieldName `json:"field"`
	} `json:"referenceField,omitempty"`
}

type wireCondition struct {
	FieldName string   `json:"FieldName"`
	Operator  Operator `json:"Operator"`
	Values    []any    `json:"Values"`
}

type wireQuery struct {
	Fields []wireField     `json:"fields,omitempty"`
	Where  []wireCondition `json:"where,omitempty"`
}

type wireResult struct {
	Success bool                       `json:"success"`
	Code    string                     `json:"code,omitempty"`
	Message string                     `json:"message,omitempty"`
	Data    map[string]json.RawMessage `json:"data,omitempty"`
}

type wireResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Results []wireResult    `json:"results,omitempty"`
}

func toWireQuery(q Query) wireQuery {
	var w wireQuery
	for _, f := range q.Fields {
		wf := wireField{Field: wireFieldName{Name: f.Name}}
		if f.Reference != "" {
			wf.ReferenceField = &struct {
				Field wireFieldName `json:"field"`
			}{Field: wireFieldName{Name: f.Reference}}
		}
		w.Fields = append(w.Fields, wf)
	}
	for _, c := range q.Where {
		w.Where = append(w.Where, wireCondition(c))
	}
	return w
}

// decodeRecord converts a wire object. Columns the query expanded come back
// as objects carrying Id; a bare scalar there is kept as an unresolved key so
// one odd row does not sink the whole read. Objects in columns the query did
// not expand are reduced to their Id.
func decodeRecord(raw map[string]json.RawMessage, q Query) (Record, error) {
	rec := Record{Fields: Fields{}}
	for key, msg := range raw {
		switch key {
		case IDField:
			if err := json.Unmarshal(msg, &rec.ID); err != nil {
				return Record{}, fmt.Errorf("decode Id: %w", err)
			}
			continue
		case NameField:
			var name *string
			if err := json.Unmarshal(msg, &name); err != nil {
				return Record{}, fmt.Errorf("decode Name: %w", err)
			}
			if name != nil {
				rec.Name = *name
			}
			continue
		}

		var v any
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return Record{}, fmt.Errorf("decode %s: %w", key, err)
		}
		if v == nil {
			continue
		}
		obj, isObj := v.(map[string]any)
		switch {
		case q.Expanded(key) && isObj:
			ref := Ref{ID: AsInt(obj[IDField]), Resolved: true, Fields: map[string]string{}}
			for _, col := range q.References(key) {
				ref.Fields[col] = AsString(obj[col])
			}
			rec.setRef(key, ref)
		case isObj:
			rec.Fields[key] = AsInt(obj[IDField])
		case q.Expanded(key):
			rec.Fields[key] = v
			rec.setRef(key, Ref{ID: AsInt(v)})
		default:
			rec.Fields[key] = v
		}
	}
	return rec, nil
}

func (c *HTTPClient) tableURL(table string, parts ...string) string {
	u := c.base + "/tables/" + url.PathEscape(table)
	for _, p := range parts {
		u += "/" + url.PathEscape(p)
	}
	return u
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body any) (*wireResponse, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var out wireResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if res.StatusCode >= 300 {
			return nil, fmt.Errorf("record api error: %s - %s", res.Status, string(raw))
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if res.StatusCode >= 300 && out.Success {
		return nil, fmt.Errorf("record api error: %s", res.Status)
	}
	return &out, nil
}

// convert decodes the envelope. Per-record write results carry no projection,
// so they are decoded with an empty query.
func (c *HTTPClient) convert(w *wireResponse, q Query, list bool) (*Response, error) {
	resp := &Response{Success: w.Success, Message: w.Message}
	if len(w.Data) > 0 && string(w.Data) != "null" {
		var raws []map[string]json.RawMessage
		if list {
			if err := json.Unmarshal(w.Data, &raws); err != nil {
				return nil, fmt.Errorf("decode data: %w", err)
			}
		} else {
			var one map[string]json.RawMessage
			if err := json.Unmarshal(w.Data, &one); err != nil {
				return nil, fmt.Errorf("decode data: %w", err)
			}
			raws = append(raws, one)
		}
		for _, raw := range raws {
			rec, err := decodeRecord(raw, q)
			if err != nil {
				return nil, err
			}
			resp.Data = append(resp.Data, rec)
		}
	}
	for _, r := range w.Results {
		res := Result{Success: r.Success, Code: r.Code, Message: r.Message}
		if r.Data != nil {
			rec, err := decodeRecord(r.Data, Query{})
			if err != nil {
				return nil, err
			}
			res.Data = &rec
		}
		resp.Results = append(resp.Results, res)
	}
	return resp, nil
}

func (c *HTTPClient) FetchRecords(ctx context.Context, table string, q Query) (*Response, error) {
	w, err := c.do(ctx, http.MethodPost, c.tableURL(table, "query"), toWireQuery(q))
	if err != nil {
		return nil, err
	}
	return c.convert(w, q, true)
}

func (c *HTTPClient) GetRecordByID(ctx context.Context, table string, id int64, q Query) (*Response, error) {
	endpoint := c.tableURL(table, "records", strconv.FormatInt(id, 10), "query")
	w, err := c.do(ctx, http.MethodPost, endpoint, toWireQuery(q))
	if err != nil {
		return nil, err
	}
	return c.convert(w, q, false)
}

func (c *HTTPClient) CreateRecord(ctx context.Context, table string, records []Fields) (*Response, error) {
	w, err := c.do(ctx, http.MethodPost, c.tableURL(table, "records"), map[string]any{"records": records})
	if err != nil {
		return nil, err
	}
	return c.convert(w, Query{}, true)
}

func (c *HTTPClient) UpdateRecord(ctx context.Context, table string, records []Fields) (*Response, error) {
	w, err := c.do(ctx, http.MethodPut, c.tableURL(table, "records"), map[string]any{"records": records})
	if err != nil {
		return nil, err
	}
	return c.convert(w, Query{}, true)
}

func (c *HTTPClient) DeleteRecord(ctx context.Context, table string, ids []int64) (*Response, error) {
	w, err := c.do(ctx, http.MethodDelete, c.tableURL(table, "records"), map[string]any{"RecordIds": ids})
	if err != nil {
		return nil, err
	}
	return c.convert(w, Query{}, true)
}

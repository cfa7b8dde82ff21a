package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingPage = `<!DOCTYPE html>
<html><head>
<title>Careers</title>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Organization","name":"Northwind"}</script>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "JobPosting",
  "title": "Platform Engineer",
  "description": "<p>Run our <b>Kubernetes</b> fleet.</p><ul><li>Go</li><li>Terraform</li></ul>",
  "datePosted": "2025-02-01",
  "employmentType": ["FULL_TIME"],
  "industry": "Technology",
  "hiringOrganization": {"@type": "Organization", "name": "Northwind"},
  "jobLocation": {"@type": "Place", "address": {"addressLocality": "Lisbon", "addressCountry": {"name": "Portugal"}}},
  "baseSalary": {"currency": "EUR", "value": {"minValue": 70000, "maxValue": 90000, "unitText": "YEAR"}}
}
</script>
</head><body><h1>Ignored heading</h1></body></html>`

func TestParseJSONLD(t *testing.T) {
	job, err := Parse(strings.NewReader(postingPage))
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineer", job.Title)
	assert.Equal(t, "Northwind", job.Company)
	assert.Equal(t, "full-time", job.JobType)
	assert.Equal(t, "Technology", job.Industry)
	assert.Equal(t, "Lisbon, Portugal", job.Location)
	assert.Equal(t, "EUR 70000 - 90000 per year", job.SalaryRange)
	assert.Equal(t, "Run our Kubernetes fleet.\n\nGo\n\nTerraform", job.Description)
	require.NotNil(t, job.PostedDate)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *job.PostedDate)
}

func TestParseGraphAndRemote(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
{"@graph":[{"@type":"WebPage"},{"@type":"JobPosting","title":"Support Lead","hiringOrganization":"Brightdesk","employmentType":"CONTRACTOR","jobLocationType":"TELECOMMUTE","description":"Lead the team."}]}
</script></head></html>`

	job, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "Support Lead", job.Title)
	assert.Equal(t, "Brightdesk", job.Company)
	assert.Equal(t, "contract", job.JobType)
	assert.Equal(t, "Remote", job.Location)
	assert.Equal(t, "Lead the team.", job.Description)
	assert.Nil(t, job.PostedDate)
}

func TestParseMarkupFallback(t *testing.T) {
	page := `<html><head><meta property="og:site_name" content="Harbor Logistics"></head>
<body><nav><p>Menu</p></nav>
<h1>  Data   Analyst </h1>
<article><p>Turn shipment data
 into reports.</p><script>var x;</script><h3>Benefits</h3><li>Bike lease</li></article>
</body></html>`

	job, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", job.Title)
	assert.Equal(t, "Harbor Logistics", job.Company)
	assert.Equal(t, "Turn shipment data\ninto reports.\n\nBenefits\n\nBike lease", job.Description)
}

func TestParseNoPosting(t *testing.T) {
	_, err := Parse(strings.NewReader(`<html><body><p>Nothing here</p></body></html>`))
	assert.ErrorIs(t, err, ErrNoPosting)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs/platform" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(postingPage))
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "")
	job, err := f.Fetch(context.Background(), srv.URL+"/jobs/platform")
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", job.Title)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "unexpected status 404")

	_, err = f.Fetch(context.Background(), "ftp://example.com/job")
	assert.ErrorContains(t, err, "invalid url")
}

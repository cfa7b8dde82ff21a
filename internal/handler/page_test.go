package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentbridge/jobboard/pkg/model"
)

func TestHomeShowsActiveJobs(t *testing.T) {
	ts := newTestServer(t)
	ts.createJob(t, engineer())
	closed := engineer()
	closed.Title = "Closed Role"
	closed.Status = model.JobStatusClosed
	ts.createJob(t, closed)

	w := ts.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	doc := document(t, w)

	cards := doc.Find(".job-card")
	assert.Equal(t, 1, cards.Length())
	assert.Equal(t, "Backend Engineer", cards.Find("h3").Text())
	assert.Equal(t, "Home", doc.Find(".nav-link.active").Text())
	assert.Equal(t, "Login", doc.Find(".actions a.btn-outline").Text())
}

func TestJobsFilter(t *testing.T) {
	ts := newTestServer(t)
	ts.createJob(t, engineer())
	contract := engineer()
	contract.Title = "Contract Designer"
	contract.JobType = "contract"
	ts.createJob(t, contract)

	w := ts.get("/jobs?type=contract")
	require.Equal(t, http.StatusOK, w.Code)
	doc := document(t, w)

	assert.Equal(t, "Browse Jobs", doc.Find(".nav-link.active").Text())
	titles := doc.Find(".job-card h3").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Contract Designer"}, titles)
	assert.Equal(t, "1 jobs found", doc.Find(".result-count").Text())
}

func TestJobDetailAnonymous(t *testing.T) {
	ts := newTestServer(t)
	job := ts.createJob(t, engineer())

	w := ts.get(jobURL(job))
	require.Equal(t, http.StatusOK, w.Code)
	doc := document(t, w)

	assert.Equal(t, "Backend Engineer", doc.Find(".job-detail h1").Text())
	assert.Equal(t, 2, doc.Find(".description p").Length())
	assert.Equal(t, 0, doc.Find(".apply-form").Length())
	href, _ := doc.Find(".apply-button").First().Attr("href")
	assert.Equal(t, "/login?redirect="+url.QueryEscape(jobURL(job)), href)
	assert.Equal(t, "Browse Jobs", doc.Find(".nav-link.active").Text())
}

func TestJobDetailNotFound(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/jobs/99")
	assert.Equal(t, http.StatusNotFound, w.Code)
	doc := document(t, w)
	assert.Equal(t, "Job not found", doc.Find(".error-message").Text())
	retry, _ := doc.Find(".error-state a").Attr("href")
	assert.Equal(t, "/jobs/99", retry)
}

func TestApplyRequiresLogin(t *testing.T) {
	ts := newTestServer(t)
	job := ts.createJob(t, engineer())

	w := ts.postForm(jobURL(job)+"/apply", url.Values{"candidateName": {"Ada"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect=%2Fjobs%2F"+strconv.FormatInt(job.ID, 10), w.Header().Get("Location"))
	assert.Empty(t, ts.h.Repo.Application.GetAll(t.Context()))
}

func TestApplyThenApplied(t *testing.T) {
	ts := newTestServer(t)
	job := ts.createJob(t, engineer())
	ts.signIn(ada)

	w := ts.get(jobURL(job))
	doc := document(t, w)
	name, _ := doc.Find(`.apply-form input[name="candidateName"]`).Attr("value")
	assert.Equal(t, "Ada Lovelace", name)

	w = ts.postForm(jobURL(job)+"/apply", url.Values{
		"candidateName": {"Ada Lovelace"},
		"coverLetter":   {"Hello"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, jobURL(job), w.Header().Get("Location"))

	apps := ts.h.Repo.Application.GetAll(t.Context())
	require.Len(t, apps, 1)
	assert.Equal(t, "ada@example.com", apps[0].Email)
	assert.Equal(t, model.ApplicationStatusSubmitted, apps[0].Status)

	doc = document(t, ts.get(jobURL(job)))
	applied := doc.Find(".apply-button").First()
	assert.Equal(t, "Applied", applied.Text())
	_, disabled := applied.Attr("disabled")
	assert.True(t, disabled)
	assert.Equal(t, 0, doc.Find(".apply-form").Length())

	// a second submission is a no-op
	w = ts.postForm(jobURL(job)+"/apply", url.Values{"candidateName": {"Ada Lovelace"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Len(t, ts.h.Repo.Application.GetAll(t.Context()), 1)
}

func TestApplyUnknownJob(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(ada)

	w := ts.postForm("/jobs/42/apply", url.Values{"candidateName": {"Ada"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, ts.h.Repo.Application.GetAll(t.Context()))
}

func TestSaveAndUnsaveJob(t *testing.T) {
	ts := newTestServer(t)
	job := ts.createJob(t, engineer())

	w := ts.postForm(jobURL(job)+"/save", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, jobURL(job), w.Header().Get("Location"))

	// saving again is not an error for the page
	w = ts.postForm(jobURL(job)+"/save", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	doc := document(t, ts.get(jobURL(job)))
	assert.Equal(t, "Saved", doc.Find(".save-toggle").First().Text())

	w = ts.postForm(jobURL(job)+"/unsave", url.Values{"redirect": {"/candidates"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/candidates", w.Header().Get("Location"))
	assert.False(t, ts.h.Repo.SavedJob.IsJobSaved(t.Context(), job.ID))

	w = ts.postForm(jobURL(job)+"/unsave", url.Values{"redirect": {"https://evil.example"}})
	assert.Equal(t, "/", w.Header().Get("Location"))
}

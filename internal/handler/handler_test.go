package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/talentbridge/jobboard/internal/auth"
	"github.com/talentbridge/jobboard/internal/record"
	"github.com/talentbridge/jobboard/internal/repository"
	"github.com/talentbridge/jobboard/internal/session"
	"github.com/talentbridge/jobboard/pkg/model"
	"github.com/talentbridge/jobboard/web"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

var ada = session.Session{
	ID:        "sess-ada",
	User:      &session.User{ID: 7, FirstName: "Ada", LastName: "Lovelace", EmailAddress: "ada@example.com"},
	ExpiresAt: testNow.Add(time.Hour),
}

type testServer struct {
	h      *Handler
	router *gin.Engine
	sess   *session.Session
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	h := &Handler{
		Logger:     zap.NewNop(),
		Repo:       repository.NewRepository(record.NewMemStore(repository.Schema()), zap.NewNop()),
		TokenMaker: auth.NewJWTMaker("test-secret"),
		Sessions:   session.NewMemoryStore(),
		TokenTTL:   time.Hour,
		Now:        func() time.Time { return testNow },
	}
	ts := &testServer{h: h}

	r := gin.New()
	r.HTMLRender = web.MustRenderer()
	r.Use(func(c *gin.Context) {
		if ts.sess != nil {
			SetSession(c, *ts.sess)
		}
		c.Next()
	})
	r.GET("/", h.Home)
	r.GET("/jobs", h.Jobs)
	r.GET("/jobs/:id", h.JobDetail)
	r.POST("/jobs/:id/apply", h.Apply)
	r.POST("/jobs/:id/save", h.SaveJob)
	r.POST("/jobs/:id/unsave", h.UnsaveJob)
	r.GET("/candidates", h.Candidates)
	r.POST("/candidates/applications/:id/withdraw", h.WithdrawOwnApplication)
	r.GET("/employers", h.Employers)
	r.POST("/employers/shortlist", h.RequestShortlist)
	r.POST("/employers/post-job", h.PostJob)
	r.POST("/login", h.Login)
	r.POST("/signup", h.Signup)
	r.POST("/api/v1/signup", h.SignUpAPI)
	r.POST("/api/v1/saved-jobs", h.CreateSavedJob)
	r.DELETE("/api/v1/saved-jobs/:jobId", h.DeleteSavedJob)
	r.GET("/api/v1/jobs", h.ListJobs)
	r.GET("/api/v1/applications", h.ListApplications)
	r.POST("/api/v1/applications/:id/withdraw", h.WithdrawApplication)
	ts.router = r
	return ts
}

func (ts *testServer) signIn(s session.Session) {
	ts.sess = &s
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (ts *testServer) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(req)
}

func (ts *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return ts.do(req)
}

func (ts *testServer) createJob(t *testing.T, req model.CreateJobReq) *model.Job {
	t.Helper()
	job, err := ts.h.Repo.Job.Create(context.Background(), req)
	require.NoError(t, err)
	return job
}

func document(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

func engineer() model.CreateJobReq {
	return model.CreateJobReq{
		Title:           "Backend Engineer",
		Company:         "Acme",
		Location:        "Remote",
		JobType:         "full-time",
		ExperienceLevel: "senior-level",
		Description:     "Build services.\n\nShip often.",
	}
}

func jobURL(job *model.Job) string {
	return "/jobs/" + strconv.FormatInt(job.ID, 10)
}

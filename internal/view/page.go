package view

import (
	"sort"
	"strings"
	"time"

	"github.com/talentbridge/jobboard/internal/session"
	"github.com/talentbridge/jobboard/pkg/model"
)

// Page is the data every template's layout needs.
type Page struct {
	Title       string
	Path        string
	Nav         []NavItem
	Session     session.Session
	DisplayName string
	Flash       string
	Error       string
	// RetryURL is offered as "Try again" when Error is set.
	RetryURL string
}

func NewPage(title, path string, sess session.Session) Page {
	return Page{
		Title:       title,
		Path:        path,
		Nav:         NavItems(path),
		Session:     sess,
		DisplayName: sess.User.DisplayName(),
	}
}

// Fail marks the page as a load failure that can be retried at the same URL.
func (p Page) Fail(message string) Page {
	p.Error = message
	p.RetryURL = p.Path
	return p
}

type JobCard struct {
	Job               model.Job
	TypeVariant       string
	ExperienceVariant string
	Posted            string
}

func NewJobCard(job model.Job, now time.Time) JobCard {
	return JobCard{
		Job:               job,
		TypeVariant:       JobTypeVariant(job.JobType),
		ExperienceVariant: ExperienceVariant(job.ExperienceLevel),
		Posted:            RelativeTime(job.PostedDate, now),
	}
}

func JobCards(jobs []model.Job, now time.Time) []JobCard {
	cards := make([]JobCard, 0, len(jobs))
	for _, j := range jobs {
		cards = append(cards, NewJobCard(j, now))
	}
	return cards
}

// JobFilter narrows the browse page. Empty fields match everything.
type JobFilter struct {
	Query           string `form:"q"`
	JobType         string `form:"type"`
	ExperienceLevel string `form:"level"`
	Location        string `form:"location"`
}

// FilterJobs keeps active jobs matching f, newest first.
func FilterJobs(jobs []model.Job, f JobFilter) []model.Job {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	loc := strings.ToLower(strings.TrimSpace(f.Location))
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Status != model.JobStatusActive {
			continue
		}
		if q != "" && !containsAny(q, j.Title, j.Company, j.Description, j.Industry) {
			continue
		}
		if f.JobType != "" && !strings.EqualFold(j.JobType, f.JobType) {
			continue
		}
		if f.ExperienceLevel != "" && !strings.EqualFold(j.ExperienceLevel, f.ExperienceLevel) {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(j.Location), loc) {
			continue
		}
		out = append(out, j)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].PostedDate.After(out[b].PostedDate) })
	return out
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// JobDetail backs /jobs/:id.
type JobDetail struct {
	JobCard
	Paragraphs []string
	HasApplied bool
	IsSaved    bool
	// ApplyURL is the form action, or the login page for anonymous visitors.
	ApplyURL string
	NeedsLogin bool
}

func NewJobDetail(job model.Job, sess session.Session, path string, hasApplied, isSaved bool, now time.Time) JobDetail {
	d := JobDetail{
		JobCard:    NewJobCard(job, now),
		Paragraphs: Paragraphs(job.Description),
		HasApplied: hasApplied,
		IsSaved:    isSaved,
		ApplyURL:   path + "/apply",
	}
	if !sess.Authenticated() {
		d.NeedsLogin = true
		d.ApplyURL = LoginURL(path)
	}
	return d
}

type ApplicationRow struct {
	Application   model.Application
	StatusVariant string
	StatusLabel   string
	Submitted     string
	CanWithdraw   bool
}

func NewApplicationRows(apps []model.Application, now time.Time) []ApplicationRow {
	rows := make([]ApplicationRow, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, ApplicationRow{
			Application:   a,
			StatusVariant: StatusVariant(a.Status),
			StatusLabel:   StatusLabel(a.Status),
			Submitted:     RelativeTime(a.SubmittedDate, now),
			CanWithdraw: a.Status != model.ApplicationStatusWithdrawn &&
				a.Status != model.ApplicationStatusRejected &&
				a.Status != model.ApplicationStatusOffered,
		})
	}
	return rows
}

type SavedJobRow struct {
	SavedJob model.SavedJob
	Saved    string
}

func NewSavedJobRows(saved []model.SavedJob, now time.Time) []SavedJobRow {
	rows := make([]SavedJobRow, 0, len(saved))
	for _, s := range saved {
		rows = append(rows, SavedJobRow{SavedJob: s, Saved: RelativeTime(s.SavedAt, now)})
	}
	return rows
}

type StatusCount struct {
	Status  model.ApplicationStatus
	Label   string
	Variant string
	Count   int
}

// Dashboard backs /candidates.
type Dashboard struct {
	Applications []ApplicationRow
	SavedJobs    []SavedJobRow
	Stats        model.ApplicationStats
	StatusCounts []StatusCount
}

func NewDashboard(apps []model.Application, saved []model.SavedJob, stats model.ApplicationStats, now time.Time) Dashboard {
	counts := make([]StatusCount, 0, len(model.ApplicationStatuses))
	for _, s := range model.ApplicationStatuses {
		counts = append(counts, StatusCount{
			Status:  s,
			Label:   StatusLabel(s),
			Variant: StatusVariant(s),
			Count:   stats.ByStatus[s],
		})
	}
	return Dashboard{
		Applications: NewApplicationRows(apps, now),
		SavedJobs:    NewSavedJobRows(saved, now),
		Stats:        stats,
		StatusCounts: counts,
	}
}

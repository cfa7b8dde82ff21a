package fetcher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/talentbridge/jobboard/pkg/model"
)

// jobPostingLD is the subset of schema.org/JobPosting we map. Several
// properties may be a string, an object or a list, so they stay raw.
type jobPostingLD struct {
	Type               json.RawMessage   `json:"@type"`
	Graph              []json.RawMessage `json:"@graph"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	DatePosted         string            `json:"datePosted"`
	EmploymentType     json.RawMessage   `json:"employmentType"`
	Industry           json.RawMessage   `json:"industry"`
	HiringOrganization json.RawMessage   `json:"hiringOrganization"`
	JobLocation        json.RawMessage   `json:"jobLocation"`
	JobLocationType    string            `json:"jobLocationType"`
	BaseSalary         *struct {
		Currency string `json:"currency"`
		Value    struct {
			MinValue float64 `json:"minValue"`
			MaxValue float64 `json:"maxValue"`
			Value    float64 `json:"value"`
			UnitText string  `json:"unitText"`
		} `json:"value"`
	} `json:"baseSalary"`
}

func fromJSONLD(doc *goquery.Document) (*model.CreateJobReq, bool) {
	var found *model.CreateJobReq
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, p := range decodeLD([]byte(s.Text())) {
			if p.Title != "" && strings.EqualFold(firstString(p.Type), "JobPosting") {
				found = p.toJob()
				return false
			}
		}
		return true
	})
	return found, found != nil
}

// decodeLD accepts a single node, a list of nodes or an @graph wrapper.
func decodeLD(data []byte) []jobPostingLD {
	var list []jobPostingLD
	if err := json.Unmarshal(data, &list); err != nil {
		var one jobPostingLD
		if err := json.Unmarshal(data, &one); err != nil {
			return nil
		}
		list = []jobPostingLD{one}
	}
	var out []jobPostingLD
	for _, p := range list {
		out = append(out, p)
		for _, raw := range p.Graph {
			out = append(out, decodeLD(raw)...)
		}
	}
	return out
}

func (p jobPostingLD) toJob() *model.CreateJobReq {
	job := &model.CreateJobReq{
		Title:       cleanText(p.Title),
		Company:     nameOf(p.HiringOrganization),
		Description: htmlText(p.Description),
		JobType:     employmentType(firstString(p.EmploymentType)),
		Industry:    firstString(p.Industry),
		Location:    location(p.JobLocation),
		SalaryRange: p.salary(),
	}
	if strings.EqualFold(p.JobLocationType, "TELECOMMUTE") && job.Location == "" {
		job.Location = "Remote"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, p.DatePosted); err == nil {
			job.PostedDate = &t
			break
		}
	}
	return job
}

func (p jobPostingLD) salary() string {
	if p.BaseSalary == nil {
		return ""
	}
	v := p.BaseSalary.Value
	var amount string
	switch {
	case v.MinValue > 0 && v.MaxValue > 0:
		amount = fmt.Sprintf("%.0f - %.0f", v.MinValue, v.MaxValue)
	case v.Value > 0:
		amount = fmt.Sprintf("%.0f", v.Value)
	default:
		return ""
	}
	s := strings.TrimSpace(p.BaseSalary.Currency + " " + amount)
	if v.UnitText != "" {
		s += " per " + strings.ToLower(v.UnitText)
	}
	return s
}

// employmentType maps schema.org values onto the board's job types.
func employmentType(v string) string {
	switch strings.ToUpper(v) {
	case "":
		return ""
	case "FULL_TIME":
		return "full-time"
	case "PART_TIME":
		return "part-time"
	case "CONTRACTOR", "TEMPORARY":
		return "contract"
	}
	return strings.ReplaceAll(strings.ToLower(v), "_", "-")
}

// firstString reads a string or the first string of a list.
func firstString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

func nameOf(raw json.RawMessage) string {
	var org struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &org) == nil && org.Name != "" {
		return org.Name
	}
	return firstString(raw)
}

type placeLD struct {
	Address struct {
		Locality string          `json:"addressLocality"`
		Region   string          `json:"addressRegion"`
		Country  json.RawMessage `json:"addressCountry"`
	} `json:"address"`
}

// location renders the first place as "City, Region, Country".
func location(raw json.RawMessage) string {
	var places []placeLD
	if json.Unmarshal(raw, &places) != nil {
		var one placeLD
		if json.Unmarshal(raw, &one) != nil {
			return ""
		}
		places = []placeLD{one}
	}
	if len(places) == 0 {
		return ""
	}
	a := places[0].Address
	var parts []string
	for _, p := range []string{a.Locality, a.Region, nameOf(a.Country)} {
		if p != "" && !contains(parts, p) {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// htmlText turns an HTML description into plain paragraphs.
func htmlText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return strings.TrimSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return cleanText(fragment)
	}
	return paragraphs(doc.Selection)
}

// Package view derives the display values pages render from adapter data.
package view

import (
	"strings"

	"github.com/talentbridge/jobboard/pkg/model"
)

// Badge variants understood by the stylesheet.
const (
	VariantDefault = "default"
	VariantPrimary = "primary"
	VariantSuccess = "success"
	VariantWarning = "warning"
	VariantInfo    = "info"
	VariantError   = "error"
)

func JobTypeVariant(jobType string) string {
	switch strings.ToLower(jobType) {
	case "full-time":
		return VariantSuccess
	case "part-time":
		return VariantWarning
	case "contract":
		return VariantInfo
	}
	return VariantDefault
}

func ExperienceVariant(level string) string {
	switch strings.ToLower(level) {
	case "entry-level":
		return VariantSuccess
	case "mid-level":
		return VariantPrimary
	case "senior-level":
		return VariantWarning
	}
	return VariantDefault
}

func StatusVariant(status model.ApplicationStatus) string {
	switch status {
	case model.ApplicationStatusSubmitted:
		return VariantInfo
	case model.ApplicationStatusUnderReview:
		return VariantWarning
	case model.ApplicationStatusShortlisted, model.ApplicationStatusInterviewed:
		return VariantPrimary
	case model.ApplicationStatusOffered:
		return VariantSuccess
	case model.ApplicationStatusRejected:
		return VariantError
	}
	return VariantDefault
}

// StatusLabel turns "under-review" into "Under Review".
func StatusLabel(status model.ApplicationStatus) string {
	words := strings.Split(string(status), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

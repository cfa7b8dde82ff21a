package view

import (
	"fmt"
	"math"
	"time"
)

const (
	minutesInDay   = 1440
	minutesInMonth = 43200
)

// RelativeTime renders the distance between t and now in words with a
// suffix: "3 days ago", "in about 2 hours".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	future := d < 0
	if future {
		d = -d
	}
	words := distance(d)
	if future {
		return "in " + words
	}
	return words + " ago"
}

func distance(d time.Duration) string {
	seconds := d.Seconds()
	minutes := int(math.Round(seconds / 60))

	switch {
	case minutes < 1:
		return "less than a minute"
	case minutes < 2:
		return "1 minute"
	case minutes < 45:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes < 90:
		return "about 1 hour"
	case minutes < minutesInDay:
		return fmt.Sprintf("about %d hours", int(math.Round(float64(minutes)/60)))
	case minutes < 2520:
		return "1 day"
	case minutes < minutesInMonth:
		return fmt.Sprintf("%d days", int(math.Round(float64(minutes)/minutesInDay)))
	case minutes < 2*minutesInMonth:
		return "about 1 month"
	}

	months := int(math.Round(float64(minutes) / minutesInMonth))
	if months < 12 {
		return fmt.Sprintf("%d months", months)
	}
	years, rem := months/12, months%12
	switch {
	case rem < 3:
		return plural("about", years, "year")
	case rem < 9:
		return plural("over", years, "year")
	}
	return plural("almost", years+1, "year")
}

func plural(prefix string, n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%s 1 %s", prefix, unit)
	}
	return fmt.Sprintf("%s %d %ss", prefix, n, unit)
}

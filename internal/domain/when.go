package domain

import (
	"fmt"
	"strings"
)

// When is the temporal bucket a task is planned for.
type When string

const (
	WhenToday    When = "today"
	WhenNextDay  When = "nextday"
	WhenNextWeek When = "nextweek"
	WhenSomeday  When = "someday"
)

// AllWhens lists the buckets in display order.
var AllWhens = []When{WhenToday, WhenNextDay, WhenNextWeek, WhenSomeday}

// ParseWhen accepts the stored spellings plus the hyphenated and spaced
// forms ("next-day", "next week"), case-insensitively.
func ParseWhen(s string) (When, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "", " ", "", "_", "").Replace(normalized)
	switch normalized {
	case "today":
		return WhenToday, nil
	case "nextday", "tomorrow":
		return WhenNextDay, nil
	case "nextweek":
		return WhenNextWeek, nil
	case "someday":
		return WhenSomeday, nil
	}
	return "", fmt.Errorf("unknown bucket %q (want today, nextday, nextweek or someday)", s)
}

// IsValid reports whether w is one of the four buckets.
func (w When) IsValid() bool {
	switch w {
	case WhenToday, WhenNextDay, WhenNextWeek, WhenSomeday:
		return true
	}
	return false
}

// IsNext reports whether w belongs to the merged "Next" group.
func (w When) IsNext() bool {
	return w == WhenNextDay || w == WhenNextWeek
}

// Label returns the human-readable bucket name.
func (w When) Label() string {
	switch w {
	case WhenToday:
		return "Today"
	case WhenNextDay:
		return "Next day"
	case WhenNextWeek:
		return "Next week"
	case WhenSomeday:
		return "Someday"
	}
	return string(w)
}

// OrDefault returns w, or today when w is unset.
func (w When) OrDefault() When {
	if w == "" {
		return WhenToday
	}
	return w
}

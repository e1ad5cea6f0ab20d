package model

import (
	"math/rand"
	"strconv"
	"time"
)

// NewID returns "<prefix>-<six digits>". Collisions are not checked.
func NewID(prefix string) string {
	return prefix + "-" + strconv.Itoa(100000+rand.Intn(900000))
}

// DateLayout is the wire format for record dates.
const DateLayout = "2006-01-02"

// Today returns the current date in wire format.
func Today() string {
	return time.Now().Format(DateLayout)
}

// ParseDate reads a wire date; unparseable dates sort as the zero time.
func ParseDate(s string) time.Time {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// FormatDate renders a wire date in layout. An empty layout or an unparseable
// date returns s unchanged.
func FormatDate(s, layout string) string {
	if layout == "" {
		return s
	}
	t := ParseDate(s)
	if t.IsZero() {
		return s
	}
	return t.Format(layout)
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// LogEntry is a single recorded exercise set.
type LogEntry struct {
	ID       int       `json:"id"`
	Exercise string    `json:"exercise"`
	Weight   float64   `json:"weight"`
	Reps     int       `json:"reps"`
	Date     time.Time `json:"date"`
	UserID   int       `json:"user_id"`
}

// NewLogEntry stamps the entry with the current time at microsecond
// precision, the precision the store keeps. The store never touches Date
// afterwards.
func NewLogEntry(exercise string, weight float64, reps int, userID int) LogEntry {
	return LogEntry{
		Exercise: exercise,
		Weight:   weight,
		Reps:     reps,
		Date:     time.Now().Truncate(time.Microsecond),
		UserID:   userID,
	}
}

// Equal compares every field. Dates are compared as instants so that values
// read back from the store match the ones written.
func (e LogEntry) Equal(o LogEntry) bool {
	return e.ID == o.ID &&
		e.Exercise == o.Exercise &&
		e.Weight == o.Weight &&
		e.Reps == o.Reps &&
		e.Date.Equal(o.Date) &&
		e.UserID == o.UserID
}

func (e LogEntry) String() string {
	var sb strings.Builder
	sb.WriteString(e.Exercise)
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "weight: %v\n", e.Weight)
	fmt.Fprintf(&sb, "reps: %d\n", e.Reps)
	fmt.Fprintf(&sb, "date: %s\n", e.Date.Format("2006-01-02T15:04:05"))
	sb.WriteString("=-=-=-=-=-=-=-=-=-=-=-\n")
	return sb.String()
}

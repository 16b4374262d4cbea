package shift

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the wire and in exports.
const DateLayout = "2006-01-02"

// MinutesPerDay is the wraparound applied when a shift crosses midnight.
const MinutesPerDay = 24 * 60

type ReportType string

const (
	ReportTypeEntry ReportType = "entry"
	ReportTypeExit  ReportType = "exit"
)

func (t ReportType) IsValid() bool {
	return t == ReportTypeEntry || t == ReportTypeExit
}

// ClockTime is a time of day with minute granularity, stored as minutes past midnight.
type ClockTime int

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime accepts "15:04" and "15:04:05". Seconds are dropped.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in clock time %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in clock time %q", s)
	}
	if len(parts) == 3 {
		second, err := strconv.Atoi(parts[2])
		if err != nil || second < 0 || second > 59 {
			return 0, fmt.Errorf("invalid second in clock time %q", s)
		}
	}

	return NewClockTime(hour, minute), nil
}

// ClockTimeOf returns the wall clock time of t in its own location.
func ClockTimeOf(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute())
}

func (c ClockTime) Minutes() int {
	return int(c)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(text []byte) error {
	parsed, err := ParseClockTime(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Report is a single entry or exit submission. Reports are never updated after creation.
type Report struct {
	ID            string     `json:"id"`
	ReportType    ReportType `json:"report_type"`
	PersonalID    string     `json:"personal_id"`
	ReporterName  string     `json:"reporter_name"`
	UnitCommander *string    `json:"unit_commander,omitempty"`
	WorkLocation  *string    `json:"work_location,omitempty"`
	HandoverFrom  *string    `json:"handover_from,omitempty"`
	HandoverTo    *string    `json:"handover_to,omitempty"`
	ReportsCount  *int       `json:"reports_count,omitempty"`
	SpecialNotes  *string    `json:"special_notes,omitempty"`
	EventDate     *time.Time `json:"event_date,omitempty"`
	EventTime     *ClockTime `json:"event_time,omitempty"`
	RecordedAt    time.Time  `json:"recorded_at"`
}

func (r Report) IsEntry() bool {
	return r.ReportType == ReportTypeEntry
}

func (r Report) IsExit() bool {
	return r.ReportType == ReportTypeExit
}

// Shift is an entry paired with the exit that closed it, if any.
type Shift struct {
	Entry           Report  `json:"entry"`
	Exit            *Report `json:"exit,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	// NegativeDuration marks a same-day shift whose exit time is earlier than its entry time.
	NegativeDuration bool `json:"negative_duration"`
}

func (s Shift) Completed() bool {
	return s.DurationMinutes != nil
}

// SameDate reports whether a and b fall on the same calendar day, ignoring location.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOnly strips the clock part of t and returns midnight UTC of the same calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

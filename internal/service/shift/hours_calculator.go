package shift

import (
	"math"
	"sort"
	"time"

	"github.com/shift-report/shift-report-backend-go/internal/domain/shift"
)

// HoursCalculator pairs entries with exits and turns them into worked hours.
// It holds no state and never mutates the slices it is given.
type HoursCalculator struct {
}

func NewHoursCalculator() *HoursCalculator {
	return &HoursCalculator{}
}

// PairEntryWithExit returns the earliest exit of personalID recorded strictly after entry.
// Two entries followed by a single exit both resolve to that exit.
func (c *HoursCalculator) PairEntryWithExit(events []shift.Report, personalID string, entry shift.Report) *shift.Report {
	return newExitIndex(events).next(personalID, entry.RecordedAt)
}

// ComputeDurationMinutes returns the minutes between entry and exit and whether they are known.
// A shift that ends on a different date than it started is assumed to cross midnight once.
func (c *HoursCalculator) ComputeDurationMinutes(entry, exit shift.Report) (int, bool) {
	if entry.EventDate == nil || entry.EventTime == nil || exit.EventDate == nil || exit.EventTime == nil {
		return 0, false
	}

	start := entry.EventTime.Minutes()
	end := exit.EventTime.Minutes()

	if shift.SameDate(*entry.EventDate, *exit.EventDate) {
		return end - start, true
	}
	return (shift.MinutesPerDay - start) + end, true
}

// Shifts pairs every entry of the window with its exit. Entries are returned in recorded_at order.
func (c *HoursCalculator) Shifts(events []shift.Report, weekStart, weekEnd time.Time, personalID *string) []shift.Shift {
	index := newExitIndex(events)
	entries := entriesInWindow(events, weekStart, weekEnd, personalID)

	shifts := make([]shift.Shift, 0, len(entries))
	for _, entry := range entries {
		s := shift.Shift{Entry: entry}
		if exit := index.next(entry.PersonalID, entry.RecordedAt); exit != nil {
			s.Exit = exit
			if minutes, ok := c.ComputeDurationMinutes(entry, *exit); ok {
				s.DurationMinutes = &minutes
				s.NegativeDuration = minutes < 0
			}
		}
		shifts = append(shifts, s)
	}
	return shifts
}

// SummarizeWeek aggregates the shifts that started in [weekStart, weekEnd] per person,
// ordered by total hours descending. People with equal totals keep the order of their
// first entry.
func (c *HoursCalculator) SummarizeWeek(events []shift.Report, weekStart, weekEnd time.Time) []shift.WeeklySummary {
	shifts := c.Shifts(events, weekStart, weekEnd, nil)
	if len(shifts) == 0 {
		return []shift.WeeklySummary{}
	}

	type accumulator struct {
		summary  shift.WeeklySummary
		sumHours float64
		first    time.Time
		last     time.Time
	}

	order := make([]string, 0)
	groups := make(map[string]*accumulator)

	for _, s := range shifts {
		acc, ok := groups[s.Entry.PersonalID]
		if !ok {
			acc = &accumulator{
				summary: shift.WeeklySummary{
					PersonalID:   s.Entry.PersonalID,
					ReporterName: s.Entry.ReporterName,
				},
				first: shift.DateOnly(*s.Entry.EventDate),
				last:  shift.DateOnly(*s.Entry.EventDate),
			}
			groups[s.Entry.PersonalID] = acc
			order = append(order, s.Entry.PersonalID)
		}

		acc.summary.TotalShifts++
		if s.Completed() {
			hours := float64(*s.DurationMinutes) / 60.0
			acc.summary.CompletedShifts++
			acc.sumHours += hours
		}
		if s.NegativeDuration {
			acc.summary.FlaggedShifts++
		}

		entryDate := shift.DateOnly(*s.Entry.EventDate)
		if entryDate.Before(acc.first) {
			acc.first = entryDate
		}
		lastDate := entryDate
		if s.Exit != nil && s.Exit.EventDate != nil {
			lastDate = shift.DateOnly(*s.Exit.EventDate)
		}
		if lastDate.After(acc.last) {
			acc.last = lastDate
		}
	}

	result := make([]shift.WeeklySummary, 0, len(order))
	for _, id := range order {
		acc := groups[id]
		acc.summary.TotalHours = round2(acc.sumHours)
		if acc.summary.CompletedShifts > 0 {
			avg := round2(acc.sumHours / float64(acc.summary.CompletedShifts))
			acc.summary.AvgHoursPerCompletedShift = &avg
		}
		acc.summary.FirstShiftDate = acc.first.Format(shift.DateLayout)
		acc.summary.LastShiftDate = acc.last.Format(shift.DateLayout)
		result = append(result, acc.summary)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalHours > result[j].TotalHours
	})

	return result
}

// DailyDetail returns one row per entry of personalID in the window, ordered by entry
// date and time.
func (c *HoursCalculator) DailyDetail(events []shift.Report, personalID string, weekStart, weekEnd time.Time) []shift.DailyRow {
	shifts := c.Shifts(events, weekStart, weekEnd, &personalID)

	sort.SliceStable(shifts, func(i, j int) bool {
		a, b := shifts[i].Entry, shifts[j].Entry
		if !shift.SameDate(*a.EventDate, *b.EventDate) {
			return a.EventDate.Before(*b.EventDate)
		}
		// Unknown entry times sort last within their day.
		if (a.EventTime == nil) != (b.EventTime == nil) {
			return b.EventTime == nil
		}
		if a.EventTime != nil && *a.EventTime != *b.EventTime {
			return *a.EventTime < *b.EventTime
		}
		return a.RecordedAt.Before(b.RecordedAt)
	})

	rows := make([]shift.DailyRow, 0, len(shifts))
	for _, s := range shifts {
		row := shift.DailyRow{
			EntryDate:        s.Entry.EventDate.Format(shift.DateLayout),
			EntryTime:        clockString(s.Entry.EventTime),
			NegativeDuration: s.NegativeDuration,
			WorkLocation:     s.Entry.WorkLocation,
		}
		if s.Exit != nil {
			if s.Exit.EventDate != nil {
				d := s.Exit.EventDate.Format(shift.DateLayout)
				row.ExitDate = &d
			}
			row.ExitTime = clockString(s.Exit.EventTime)
		}
		if s.Completed() {
			hours := round2(float64(*s.DurationMinutes) / 60.0)
			row.DurationHours = &hours
		}
		rows = append(rows, row)
	}
	return rows
}

// exitIndex keeps each person's exits sorted by recorded_at for binary search.
type exitIndex map[string][]shift.Report

func newExitIndex(events []shift.Report) exitIndex {
	index := make(exitIndex)
	for _, e := range events {
		if e.IsExit() {
			index[e.PersonalID] = append(index[e.PersonalID], e)
		}
	}
	for id := range index {
		exits := index[id]
		sort.SliceStable(exits, func(i, j int) bool {
			return exits[i].RecordedAt.Before(exits[j].RecordedAt)
		})
	}
	return index
}

func (x exitIndex) next(personalID string, after time.Time) *shift.Report {
	exits := x[personalID]
	i := sort.Search(len(exits), func(i int) bool {
		return exits[i].RecordedAt.After(after)
	})
	if i == len(exits) {
		return nil
	}
	exit := exits[i]
	return &exit
}

// entriesInWindow filters on the entry's own date only. Entries without a date never qualify.
func entriesInWindow(events []shift.Report, weekStart, weekEnd time.Time, personalID *string) []shift.Report {
	start := shift.DateOnly(weekStart)
	end := shift.DateOnly(weekEnd)

	entries := make([]shift.Report, 0)
	for _, e := range events {
		if !e.IsEntry() || e.EventDate == nil {
			continue
		}
		if personalID != nil && e.PersonalID != *personalID {
			continue
		}
		d := shift.DateOnly(*e.EventDate)
		if d.Before(start) || d.After(end) {
			continue
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RecordedAt.Before(entries[j].RecordedAt)
	})
	return entries
}

func clockString(t *shift.ClockTime) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

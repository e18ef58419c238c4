// Package schedule contains the pure day/week aggregation over intake
// tickets. All day-boundary arithmetic lives here and runs in the business
// timezone; nothing in this package reads the clock or touches storage.
package schedule

import (
	"sort"
	"time"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"
)

// DayKeyFormat is the calendar-day bucket key layout
const DayKeyFormat = "2006-01-02"

// DayClass classifies the delivery state of one calendar day
type DayClass string

const (
	// DayEmpty means the day has no scheduled loads
	DayEmpty DayClass = "empty"
	// DayAllDelivered means every load on the day carries a
	// delivered-equivalent tag
	DayAllDelivered DayClass = "all_delivered"
	// DayAllScheduled means no load on the day carries a
	// delivered-equivalent tag
	DayAllScheduled DayClass = "all_scheduled"
	// DayMixed means the day has both kinds of loads
	DayMixed DayClass = "mixed"
)

// Totals holds the rollup counts for a set of tickets
type Totals struct {
	Count          int     `json:"count"`
	DeliveredCount int     `json:"delivered_count"`
	TotalTons      float64 `json:"total_tons"`
}

// DayBucket is one calendar day with its tickets and rollup. Derived on
// every render, never persisted.
type DayBucket struct {
	Date    string                `json:"date"`
	Entries []models.IntakeTicket `json:"entries"`
	Class   DayClass              `json:"class"`
	Totals  Totals                `json:"totals"`
}

// deliveredEquivalent reports whether the planning tag counts as resolved
// from a scheduling standpoint. This covers both arrived loads and moved
// loads; it is intentionally independent of the delivery record status,
// which field staff confirm separately.
func deliveredEquivalent(tag models.StatusTag) bool {
	return tag == models.TagArrived || tag == models.TagMoved
}

// DayKey returns the calendar-day bucket key for t in the business timezone
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyFormat)
}

// GroupByLocalDay buckets tickets by the calendar day their scheduled date
// falls on in loc. Every ticket lands in exactly one bucket. Within a day,
// tickets are ordered by scheduled date ascending with input order as the
// tiebreak. The returned keys are sorted ascending.
func GroupByLocalDay(entries []models.IntakeTicket, loc *time.Location) ([]string, map[string][]models.IntakeTicket) {
	buckets := make(map[string][]models.IntakeTicket)
	for _, entry := range entries {
		key := DayKey(entry.ScheduledDate, loc)
		buckets[key] = append(buckets[key], entry)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
		entries := buckets[key]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ScheduledDate.Before(entries[j].ScheduledDate)
		})
	}
	sort.Strings(keys)

	return keys, buckets
}

// ClassifyDay classifies one day bucket by its planning tags
func ClassifyDay(entries []models.IntakeTicket) DayClass {
	if len(entries) == 0 {
		return DayEmpty
	}

	delivered := 0
	for _, entry := range entries {
		if deliveredEquivalent(entry.StatusTag) {
			delivered++
		}
	}

	switch delivered {
	case len(entries):
		return DayAllDelivered
	case 0:
		return DayAllScheduled
	default:
		return DayMixed
	}
}

// Rollup computes the load counts and estimated tonnage for a set of
// tickets. Tonnage is a flat per-load estimate, not a sum of recorded
// weights.
func Rollup(entries []models.IntakeTicket, tonsPerLoad float64) Totals {
	totals := Totals{Count: len(entries)}
	for _, entry := range entries {
		if deliveredEquivalent(entry.StatusTag) {
			totals.DeliveredCount++
		}
	}
	totals.TotalTons = float64(totals.Count) * tonsPerLoad
	return totals
}

// BuildDayBuckets groups, classifies, and rolls up tickets into ordered day
// buckets
func BuildDayBuckets(entries []models.IntakeTicket, loc *time.Location, tonsPerLoad float64) []DayBucket {
	keys, grouped := GroupByLocalDay(entries, loc)

	buckets := make([]DayBucket, 0, len(keys))
	for _, key := range keys {
		dayEntries := grouped[key]
		buckets = append(buckets, DayBucket{
			Date:    key,
			Entries: dayEntries,
			Class:   ClassifyDay(dayEntries),
			Totals:  Rollup(dayEntries, tonsPerLoad),
		})
	}
	return buckets
}

// FilterRange returns tickets whose scheduled date falls on a day in
// [start, end] inclusive, interpreted in loc
func FilterRange(entries []models.IntakeTicket, start, end time.Time, loc *time.Location) []models.IntakeTicket {
	startKey := DayKey(start, loc)
	endKey := DayKey(end, loc)

	var out []models.IntakeTicket
	for _, entry := range entries {
		key := DayKey(entry.ScheduledDate, loc)
		if key >= startKey && key <= endKey {
			out = append(out, entry)
		}
	}
	return out
}

// TodayEntries returns the tickets scheduled for the day now falls on in loc
func TodayEntries(entries []models.IntakeTicket, now time.Time, loc *time.Location) []models.IntakeTicket {
	todayKey := DayKey(now, loc)

	var out []models.IntakeTicket
	for _, entry := range entries {
		if DayKey(entry.ScheduledDate, loc) == todayKey {
			out = append(out, entry)
		}
	}
	return out
}

// UpcomingEntries returns tickets scheduled strictly after now, soonest
// first
func UpcomingEntries(entries []models.IntakeTicket, now time.Time) []models.IntakeTicket {
	var out []models.IntakeTicket
	for _, entry := range entries {
		if entry.ScheduledDate.After(now) {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})
	return out
}

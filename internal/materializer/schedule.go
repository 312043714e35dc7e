package materializer

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // event timezones must resolve on hosts without zoneinfo

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/types"
)

// naiveLayouts are accepted date forms without an offset, read in the event timezone
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Schedule is the resolved time frame of an event
type Schedule struct {
	StartAt  time.Time
	EndAt    *time.Time
	Timezone string
	Warnings []string
	// StartDefaulted is set when StartAt is the fallback rather than a payload value
	StartDefaulted bool
}

// ResolveSchedule computes start, end and timezone of an event payload.
// The first occurrence's fields take precedence over the top-level fields.
// A missing timezone falls back to defaultTimezone and a missing or unreadable start
// falls back to now. Every fallback is reported in Warnings.
func ResolveSchedule(payload domain.EventPayload, now time.Time, defaultTimezone string) Schedule {
	var occurrence domain.Occurrence
	if len(payload.Occurrences) > 0 {
		occurrence = payload.Occurrences[0]
	}

	schedule := Schedule{Warnings: []string{}}

	if defaultTimezone == "" {
		defaultTimezone = domain.DEFAULT_EVENT_TIMEZONE
	}
	tz := types.SafeString(types.FirstNonEmpty(occurrence.Timezone, payload.Timezone))
	if tz == "" {
		tz = defaultTimezone
		schedule.Warnings = append(schedule.Warnings, fmt.Sprintf("timezone missing, defaulted to %s", defaultTimezone))
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		schedule.Warnings = append(schedule.Warnings, fmt.Sprintf("unknown timezone %q, defaulted to %s", tz, defaultTimezone))
		tz = defaultTimezone
		loc, err = time.LoadLocation(tz)
		if err != nil {
			tz = domain.DEFAULT_EVENT_TIMEZONE
			loc = time.UTC
		}
	}
	schedule.Timezone = tz

	startRaw := types.SafeString(types.FirstNonEmpty(occurrence.StartAt, payload.StartAt))
	start, err := parseTime(startRaw, loc)
	switch {
	case startRaw == "":
		schedule.StartAt = now.UTC()
		schedule.StartDefaulted = true
		schedule.Warnings = append(schedule.Warnings, "start time missing, defaulted to now")
	case err != nil:
		schedule.StartAt = now.UTC()
		schedule.StartDefaulted = true
		schedule.Warnings = append(schedule.Warnings, fmt.Sprintf("unreadable start time %q, defaulted to now", startRaw))
	default:
		schedule.StartAt = start.UTC()
	}

	endRaw := types.SafeString(types.FirstNonEmpty(occurrence.EndAt, payload.EndAt))
	if endRaw != "" {
		end, err := parseTime(endRaw, loc)
		switch {
		case err != nil:
			schedule.Warnings = append(schedule.Warnings, fmt.Sprintf("unreadable end time %q, dropped", endRaw))
		case end.Before(schedule.StartAt):
			schedule.Warnings = append(schedule.Warnings, fmt.Sprintf("end time %q precedes start, dropped", endRaw))
		default:
			e := end.UTC()
			schedule.EndAt = &e
		}
	}

	return schedule
}

// keepStart replaces a defaulted start with the start an event already has.
// The defaulted-to-now warning is reworded and an end that now precedes the start is dropped.
func (s *Schedule) keepStart(start time.Time) {
	s.StartAt = start.UTC()
	for i, w := range s.Warnings {
		if strings.HasSuffix(w, "defaulted to now") {
			s.Warnings[i] = strings.TrimSuffix(w, "defaulted to now") + "kept previous start"
		}
	}
	if s.EndAt != nil && s.EndAt.Before(s.StartAt) {
		s.Warnings = append(s.Warnings, "end time precedes previous start, dropped")
		s.EndAt = nil
	}
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", s)
}

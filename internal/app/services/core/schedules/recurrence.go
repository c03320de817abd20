package schedules

import (
	"fmt"
	"time"

	"carelink-service/internal/pkg/dto/requests"
)

const (
	frequencyDaily    = "daily"
	frequencyWeekly   = "weekly"
	frequencyBiweekly = "biweekly"
	frequencyMonthly  = "monthly"

	endTypeDate        = "date"
	endTypeOccurrences = "occurrences"
)

func isoWeekday(t time.Time) int {
	weekday := int(t.Weekday())
	if weekday == 0 {
		return 7
	}
	return weekday
}

// expandRecurrence turns a recurrence spec into a finite, ordered date list
// starting at base. The list holds at least one and at most maxDates dates.
func expandRecurrence(base time.Time, spec *requests.Recurrence, maxDates int) ([]time.Time, error) {
	interval := spec.Interval
	if interval < 1 {
		interval = 1
	}
	if spec.Frequency == frequencyBiweekly {
		interval *= 2
	}

	var endDate time.Time
	occurrences := 0
	switch spec.EndType {
	case endTypeDate:
		if spec.EndDate == "" {
			return nil, fmt.Errorf("end_date required for end_type %q", spec.EndType)
		}
		parsed, err := time.Parse("2006-01-02", spec.EndDate)
		if err != nil {
			return nil, err
		}
		endDate = parsed
		if endDate.Before(base) {
			return nil, fmt.Errorf("end_date %s precedes start date", spec.EndDate)
		}
	case endTypeOccurrences:
		if spec.Occurrences < 1 {
			return nil, fmt.Errorf("occurrences required for end_type %q", spec.EndType)
		}
		occurrences = spec.Occurrences
		if occurrences > maxDates {
			occurrences = maxDates
		}
	default:
		return nil, fmt.Errorf("unknown end_type %q", spec.EndType)
	}

	include := func(dates []time.Time, candidate time.Time) (bool, bool) {
		if spec.EndType == endTypeDate && candidate.After(endDate) {
			return false, true
		}
		if len(dates) >= maxDates {
			return false, true
		}
		if spec.EndType == endTypeOccurrences && len(dates) >= occurrences {
			return false, true
		}
		return true, false
	}

	var dates []time.Time
	switch spec.Frequency {
	case frequencyDaily:
		for candidate := base; ; candidate = candidate.AddDate(0, 0, interval) {
			ok, done := include(dates, candidate)
			if done {
				break
			}
			if ok {
				dates = append(dates, candidate)
			}
		}

	case frequencyWeekly, frequencyBiweekly:
		weekdays := map[int]bool{}
		for _, day := range spec.Weekdays {
			weekdays[day] = true
		}
		if len(weekdays) == 0 {
			weekdays[isoWeekday(base)] = true
		}

		// Walk day by day; a week belongs to the series when its offset
		// from the base week is a multiple of the interval.
		baseWeekStart := base.AddDate(0, 0, -(isoWeekday(base) - 1))
		horizon := maxDates * 7 * interval
		for offset := 0; offset <= horizon; offset++ {
			candidate := base.AddDate(0, 0, offset)
			if !weekdays[isoWeekday(candidate)] {
				continue
			}
			weeksSinceBase := int(candidate.Sub(baseWeekStart).Hours()) / (24 * 7)
			if weeksSinceBase%interval != 0 {
				continue
			}
			ok, done := include(dates, candidate)
			if done {
				break
			}
			if ok {
				dates = append(dates, candidate)
			}
		}

	case frequencyMonthly:
		for i := 0; ; i++ {
			candidate := base.AddDate(0, i*interval, 0)
			ok, done := include(dates, candidate)
			if done {
				break
			}
			if ok {
				dates = append(dates, candidate)
			}
		}

	default:
		return nil, fmt.Errorf("unknown frequency %q", spec.Frequency)
	}

	if len(dates) == 0 {
		return nil, fmt.Errorf("recurrence produced no dates")
	}
	return dates, nil
}

package report

import (
	"fmt"
	"time"

	"github.com/schoolms/backend/internal/domain/shared"
)

// Mode selects how a report period is specified
type Mode string

const (
	ModeSingle Mode = "single"
	ModeYearly Mode = "yearly"
	ModeRange  Mode = "range"
)

// IsValid checks whether the mode is known
func (m Mode) IsValid() bool {
	return m == ModeSingle || m == ModeYearly || m == ModeRange
}

// Period is a resolved, inclusive date interval with its canonical label
// ("2025-03", "2025", "2025-01_to_2025-06") and a human description.
type Period struct {
	Start       time.Time
	End         time.Time
	Label       string
	Description string
}

// PeriodInput carries the mode-specific fields for ResolvePeriod
type PeriodInput struct {
	Mode       Mode
	Year       int
	Month      int
	StartYear  int
	StartMonth int
	EndYear    int
	EndMonth   int
}

// ResolvePeriod turns a report mode into an inclusive date interval. The end
// of an interval is the last second of its final day so date comparisons with
// <= include the whole day.
func ResolvePeriod(in PeriodInput) (Period, error) {
	switch in.Mode {
	case ModeSingle:
		if err := validateMonth(in.Year, in.Month); err != nil {
			return Period{}, err
		}
		start := monthStart(in.Year, in.Month)
		return Period{
			Start:       start,
			End:         monthEnd(in.Year, in.Month),
			Label:       fmt.Sprintf("%d-%02d", in.Year, in.Month),
			Description: start.Format("January 2006"),
		}, nil

	case ModeYearly:
		if in.Year < 1 {
			return Period{}, shared.NewDomainError("INVALID_PERIOD", "Year is required for a yearly report")
		}
		return Period{
			Start:       time.Date(in.Year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:         time.Date(in.Year, time.December, 31, 23, 59, 59, 0, time.UTC),
			Label:       fmt.Sprintf("%d", in.Year),
			Description: fmt.Sprintf("Year %d", in.Year),
		}, nil

	case ModeRange:
		if err := validateMonth(in.StartYear, in.StartMonth); err != nil {
			return Period{}, err
		}
		if err := validateMonth(in.EndYear, in.EndMonth); err != nil {
			return Period{}, err
		}
		start := monthStart(in.StartYear, in.StartMonth)
		end := monthEnd(in.EndYear, in.EndMonth)
		if end.Before(start) {
			return Period{}, shared.NewDomainError("INVALID_PERIOD", "Range end month is before the start month")
		}
		return Period{
			Start: start,
			End:   end,
			Label: fmt.Sprintf("%d-%02d_to_%d-%02d", in.StartYear, in.StartMonth, in.EndYear, in.EndMonth),
			Description: fmt.Sprintf("%s to %s",
				start.Format("Jan 2006"),
				monthStart(in.EndYear, in.EndMonth).Format("Jan 2006")),
		}, nil
	}
	return Period{}, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Unknown report type %q", in.Mode))
}

// DefaultPeriod returns the previous calendar month relative to now. The
// scheduler uses it when no explicit year/month is supplied.
func DefaultPeriod(now time.Time) PeriodInput {
	prev := now.AddDate(0, -1, -now.Day()+1)
	return PeriodInput{
		Mode:  ModeSingle,
		Year:  prev.Year(),
		Month: int(prev.Month()),
	}
}

// Contains reports whether a date falls within the period, inclusive
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

func validateMonth(year, month int) error {
	if year < 1 {
		return shared.NewDomainError("INVALID_PERIOD", "Year is required")
	}
	if month < 1 || month > 12 {
		return shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Month must be between 1 and 12, got %d", month))
	}
	return nil
}

func monthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func monthEnd(year, month int) time.Time {
	return monthStart(year, month).AddDate(0, 1, 0).Add(-time.Second)
}

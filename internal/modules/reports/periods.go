package reports

import (
	"fmt"
	"time"
)

type Granularity string

const (
	Weekly  Granularity = "WEEKLY"
	Monthly Granularity = "MONTHLY"
)

// periodCount is how many ready-made period options the picker offers.
const periodCount = 4

type Period struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PeriodSource yields the picker's period options. The backend has no period
// listing endpoint today; a real one could replace the synthesized source
// without touching callers.
type PeriodSource interface {
	Periods(g Granularity, now time.Time) []Period
}

type SynthesizedSource struct{}

func (SynthesizedSource) Periods(g Granularity, now time.Time) []Period {
	return SynthesizedPeriods(g, now)
}

// SynthesizedPeriods builds the most recent options for the report picker,
// newest first. The backend accepts arbitrary ranges; these are only the
// quick choices.
func SynthesizedPeriods(g Granularity, now time.Time) []Period {
	periods := make([]Period, 0, periodCount)
	switch g {
	case Monthly:
		for i := 0; i < periodCount; i++ {
			start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
			end := time.Date(start.Year(), start.Month()+1, 0, 23, 59, 59, 0, now.Location())
			periods = append(periods, Period{
				Label: fmt.Sprintf("%s %d", start.Month(), start.Year()),
				Start: start,
				End:   end,
			})
		}
	default: // Weekly
		for i := 0; i < periodCount; i++ {
			end := now.AddDate(0, 0, -7*i)
			start := end.AddDate(0, 0, -6)
			periods = append(periods, Period{
				Label: fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2")),
				Start: start,
				End:   end,
			})
		}
	}
	return periods
}

package emg

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/neubond/emgdash/internal/models"
)

// DayStat aggregates the sessions that started on one calendar day.
type DayStat struct {
	Day           string // 2006-01-02
	Sessions      int
	TotalDuration time.Duration
}

// Summary holds descriptive aggregates over a selection of sessions.
type Summary struct {
	Sessions      int
	TotalDuration time.Duration
	MeanDuration  time.Duration
	PerDay        []DayStat // sorted by day
}

// Summarize computes descriptive aggregates over the selected sessions.
func Summarize(sessions []models.Session) (Summary, error) {
	if len(sessions) == 0 {
		return Summary{}, ErrEmptySelection
	}

	durations := make([]float64, len(sessions))
	byDay := make(map[string]*DayStat)

	var total time.Duration
	for i, s := range sessions {
		d := s.Duration()
		durations[i] = d.Seconds()
		total += d

		day := s.StartTime.Format("2006-01-02")
		ds, ok := byDay[day]
		if !ok {
			ds = &DayStat{Day: day}
			byDay[day] = ds
		}
		ds.Sessions++
		ds.TotalDuration += d
	}

	perDay := make([]DayStat, 0, len(byDay))
	for _, ds := range byDay {
		perDay = append(perDay, *ds)
	}
	sort.Slice(perDay, func(i, j int) bool { return perDay[i].Day < perDay[j].Day })

	mean := time.Duration(stat.Mean(durations, nil) * float64(time.Second))

	return Summary{
		Sessions:      len(sessions),
		TotalDuration: total,
		MeanDuration:  mean,
		PerDay:        perDay,
	}, nil
}

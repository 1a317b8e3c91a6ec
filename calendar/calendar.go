package calendar

import (
	"math"
	"time"
)

const (
	DATE_FORMAT = "2006-01-02"
	WEEKS       = 6
	DAYS        = 7
)

// Level buckets a day's hours for shading: 0 none, 1 under 2h, 2 under 4h,
// 3 under 6h, 4 for six hours or more.
type Level int

type Cell struct {
	Date    string
	Day     int
	Hours   float64
	Level   Level
	InMonth bool
	IsToday bool
}

type Grid struct {
	Year  int
	Month time.Month
	Cells [WEEKS][DAYS]Cell
	// Total is the sum of hours of the cells inside the month
	Total float64
}

func LevelFor(hours float64) Level {
	switch {
	case hours <= 0:
		return 0
	case hours < 2:
		return 1
	case hours < 4:
		return 2
	case hours < 6:
		return 3
	default:
		return 4
	}
}

// Month lays out a Sunday-first grid of six weeks covering the month.
// hoursFor is called once per cell with a YYYY-MM-DD date.
func Month(year int, month time.Month, hoursFor func(date string) float64, today time.Time) Grid {
	grid := Grid{Year: year, Month: month}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	todayStr := today.Format(DATE_FORMAT)

	for week := range WEEKS {
		for day := range DAYS {
			date := start.AddDate(0, 0, week*DAYS+day)
			dateStr := date.Format(DATE_FORMAT)
			hours := hoursFor(dateStr)
			inMonth := date.Month() == month
			grid.Cells[week][day] = Cell{
				Date:    dateStr,
				Day:     date.Day(),
				Hours:   hours,
				Level:   LevelFor(hours),
				InMonth: inMonth,
				IsToday: dateStr == todayStr,
			}
			if inMonth {
				grid.Total += hours
			}
		}
	}
	return grid
}

// Progress is total as a percentage of target, clamped to [0, 100].
func Progress(total float64, target float64) float64 {
	if target <= 0 || total <= 0 || math.IsNaN(total) {
		return 0
	}
	return math.Min(100, total/target*100)
}

// Shift moves year/month by delta months.
func Shift(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

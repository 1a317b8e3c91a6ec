package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonth(t *testing.T) {
	hours := map[string]float64{
		"2024-02-01": 7.5,
		"2024-02-29": 1,
		"2024-03-01": 3,
	}
	today := time.Date(2024, 2, 14, 9, 0, 0, 0, time.Local)
	grid := Month(2024, time.February, func(date string) float64 { return hours[date] }, today)

	t.Run("StartsOnSunday", func(t *testing.T) {
		// 2024-02-01 is a Thursday
		assert.Equal(t, "2024-01-28", grid.Cells[0][0].Date)
		assert.False(t, grid.Cells[0][0].InMonth)
		first := grid.Cells[0][4]
		assert.Equal(t, "2024-02-01", first.Date)
		assert.True(t, first.InMonth)
		assert.Equal(t, 7.5, first.Hours)
		assert.Equal(t, Level(4), first.Level)
	})

	t.Run("LeapDayAndTrailingCells", func(t *testing.T) {
		leap := grid.Cells[4][4]
		assert.Equal(t, "2024-02-29", leap.Date)
		assert.Equal(t, Level(1), leap.Level)
		next := grid.Cells[4][5]
		assert.Equal(t, "2024-03-01", next.Date)
		assert.False(t, next.InMonth)
		assert.Equal(t, "2024-03-09", grid.Cells[5][6].Date)
	})

	t.Run("Today", func(t *testing.T) {
		count := 0
		for _, week := range grid.Cells {
			for _, cell := range week {
				if cell.IsToday {
					count++
					assert.Equal(t, "2024-02-14", cell.Date)
				}
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("TotalOnlyCountsMonth", func(t *testing.T) {
		assert.Equal(t, 8.5, grid.Total)
	})
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, Progress(0, 500))
	assert.Equal(t, 0.0, Progress(10, 0))
	assert.Equal(t, 0.0, Progress(-3, 500))
	assert.Equal(t, 50.0, Progress(250, 500))
	assert.Equal(t, 100.0, Progress(750, 500))
}

func TestShift(t *testing.T) {
	year, month := Shift(2024, time.December, 1)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.January, month)
	year, month = Shift(2024, time.January, -1)
	assert.Equal(t, 2023, year)
	assert.Equal(t, time.December, month)
}

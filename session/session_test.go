package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeNetMinutes(t *testing.T) {
	t.Run("WorkDayWithBreak", func(t *testing.T) {
		assert.Equal(t, 450, ComputeNetMinutes("08:30", "17:00", 30))
	})

	t.Run("NoBreak", func(t *testing.T) {
		assert.Equal(t, 90, ComputeNetMinutes("9:00", "10:30", 0))
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		assert.Equal(t, 0, ComputeNetMinutes("09:00", "08:00", 0))
		assert.Equal(t, 0, ComputeNetMinutes("09:00", "08:00", -30))
	})

	t.Run("EndEqualsStart", func(t *testing.T) {
		assert.Equal(t, 0, ComputeNetMinutes("09:00", "09:00", 0))
	})

	t.Run("BreakLongerThanSpan", func(t *testing.T) {
		assert.Equal(t, 0, ComputeNetMinutes("09:00", "09:30", 45))
	})

	t.Run("Unparseable", func(t *testing.T) {
		assert.Equal(t, 0, ComputeNetMinutes("nine", "17:00", 0))
		assert.Equal(t, 0, ComputeNetMinutes("09:00", "25:00", 0))
		assert.Equal(t, 0, ComputeNetMinutes("09:00", "17:5", 0))
	})

	t.Run("MatchesFormulaForValidSpans", func(t *testing.T) {
		for start := 0; start < 24*60; start += 97 {
			for end := start + 1; end < 24*60; end += 113 {
				for _, brk := range []int{0, 15, 60, 600} {
					got := ComputeNetMinutes(clock(start), clock(end), brk)
					assert.Equal(t, max(0, end-start-brk), got, "%s-%s break %d", clock(start), clock(end), brk)
				}
			}
		}
	})
}

func clock(minutes int) string {
	return string([]byte{
		byte('0' + minutes/600), byte('0' + (minutes/60)%10), ':',
		byte('0' + (minutes%60)/10), byte('0' + minutes%10),
	})
}

func TestFieldsNormalize(t *testing.T) {
	valid := func() Fields {
		return Fields{Date: "2024-03-01", StartTime: "08:30", EndTime: "17:00", BreakMinutes: 30, Category: "coding"}
	}

	t.Run("Valid", func(t *testing.T) {
		f := valid()
		note := "  standup  "
		f.Note = &note
		net, err := f.normalize()
		assert.NoError(t, err)
		assert.Equal(t, 450, net)
		assert.Equal(t, "standup", *f.Note)
	})

	t.Run("BlankNoteBecomesAbsent", func(t *testing.T) {
		f := valid()
		blank := "   "
		f.Note = &blank
		_, err := f.normalize()
		assert.NoError(t, err)
		assert.Nil(t, f.Note)
	})

	cases := map[string]func(f *Fields){
		"MissingDate":     func(f *Fields) { f.Date = "" },
		"BadDate":         func(f *Fields) { f.Date = "01/03/2024" },
		"MissingCategory": func(f *Fields) { f.Category = "  " },
		"BadStart":        func(f *Fields) { f.StartTime = "8h" },
		"NegativeBreak":   func(f *Fields) { f.BreakMinutes = -5 },
		"EndBeforeStart":  func(f *Fields) { f.StartTime, f.EndTime = "09:00", "08:00" },
		"BreakEatsAll":    func(f *Fields) { f.BreakMinutes = 510 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := valid()
			mutate(&f)
			_, err := f.normalize()
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNewDocument(t *testing.T) {
	t.Run("NilSessions", func(t *testing.T) {
		doc := NewDocument(nil)
		assert.NotNil(t, doc.Sessions)
		assert.Equal(t, float64(0), doc.TotalHours)
	})

	t.Run("RoundsTotal", func(t *testing.T) {
		doc := NewDocument([]Session{{NetMinutes: 450}, {NetMinutes: 20}})
		assert.Equal(t, 7.83, doc.TotalHours)
	})
}

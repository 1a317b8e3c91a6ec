package session

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrValidation      = errors.New("invalid session")
	ErrSessionNotFound = errors.New("session not found")
	// ErrPersist means the local cache could not be written. The in-memory
	// state still holds the change.
	ErrPersist = errors.New("could not persist sessions locally")
)

const (
	DATE_FORMAT = "2006-01-02"
	TIME_FORMAT = "15:04"
)

type Session struct {
	Id           string  `json:"id"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	BreakMinutes int     `json:"breakMinutes"`
	Category     string  `json:"category"`
	Note         *string `json:"note,omitempty"`
	NetMinutes   int     `json:"netMinutes"`
}

// Fields are the user editable parts of a Session.
type Fields struct {
	Date         string
	StartTime    string
	EndTime      string
	BreakMinutes int
	Category     string
	Note         *string
}

func (s Session) Fields() Fields {
	return Fields{
		Date:         s.Date,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		BreakMinutes: s.BreakMinutes,
		Category:     s.Category,
		Note:         s.Note,
	}
}

func (s Session) NetHours() float64 {
	return float64(s.NetMinutes) / 60
}

func (s Session) String() string {
	note := ""
	if s.Note != nil {
		note = " " + *s.Note
	}
	return fmt.Sprintf("%s %s-%s (-%dm) %s %dm%s", s.Date, s.StartTime, s.EndTime, s.BreakMinutes, s.Category, s.NetMinutes, note)
}

// Document is the wire shape of the remote session store.
type Document struct {
	Sessions   []Session `json:"sessions"`
	TotalHours float64   `json:"totalHours"`
}

func NewDocument(sessions []Session) *Document {
	if sessions == nil {
		sessions = []Session{}
	}
	return &Document{Sessions: sessions, TotalHours: roundHours(totalMinutes(sessions))}
}

// ComputeNetMinutes returns the worked minutes between start and end minus
// the break. Spans crossing midnight, end <= start and unparseable times all
// yield 0, and the result never goes below 0.
func ComputeNetMinutes(start string, end string, breakMinutes int) int {
	startMin, err := parseClock(start)
	if err != nil {
		return 0
	}
	endMin, err := parseClock(end)
	if err != nil {
		return 0
	}
	if endMin <= startMin {
		return 0
	}
	return max(0, endMin-startMin-breakMinutes)
}

// parseClock accepts "HH:MM" and "H:MM" and returns minutes since midnight.
func parseClock(clock string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 || len(hh) > 2 {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return h*60 + m, nil
}

// normalize trims the fields and validates them, returning the net minutes.
func (f *Fields) normalize() (int, error) {
	f.Date = strings.TrimSpace(f.Date)
	f.StartTime = strings.TrimSpace(f.StartTime)
	f.EndTime = strings.TrimSpace(f.EndTime)
	f.Category = strings.TrimSpace(f.Category)
	if f.Note != nil {
		note := strings.TrimSpace(*f.Note)
		if note == "" {
			f.Note = nil
		} else {
			f.Note = &note
		}
	}

	if f.Date == "" || f.StartTime == "" || f.EndTime == "" || f.Category == "" {
		return 0, fmt.Errorf("%w: date, start time, end time and category are required", ErrValidation)
	}
	if _, err := time.Parse(DATE_FORMAT, f.Date); err != nil {
		return 0, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrValidation, f.Date)
	}
	if _, err := parseClock(f.StartTime); err != nil {
		return 0, fmt.Errorf("%w: start: %s", ErrValidation, err.Error())
	}
	if _, err := parseClock(f.EndTime); err != nil {
		return 0, fmt.Errorf("%w: end: %s", ErrValidation, err.Error())
	}
	if f.BreakMinutes < 0 {
		return 0, fmt.Errorf("%w: break cannot be negative", ErrValidation)
	}
	net := ComputeNetMinutes(f.StartTime, f.EndTime, f.BreakMinutes)
	if net <= 0 {
		return 0, fmt.Errorf("%w: %s-%s with %dm break has no working time", ErrValidation, f.StartTime, f.EndTime, f.BreakMinutes)
	}
	return net, nil
}

func totalMinutes(sessions []Session) int {
	total := 0
	for _, s := range sessions {
		total += s.NetMinutes
	}
	return total
}

func roundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}

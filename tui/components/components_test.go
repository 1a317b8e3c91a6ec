package components

import (
	"strings"
	"testing"
	"time"

	"hourbox/backend"
	"hourbox/calendar"
	"hourbox/files"
	"hourbox/session"

	"github.com/stretchr/testify/assert"
)

func TestFileRows(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := FileRows(files.Listing{
		Folders: []files.Folder{{Id: "f1", Name: "docs", CreatedAt: at}},
		Files:   []files.FileRecord{{Id: "a1", Name: "a.txt", Size: "1 B", UploadedAt: at}},
	})

	assert.Len(t, rows, 3)
	assert.True(t, rows[0].IsParent())
	assert.Equal(t, files.ITEM_KIND_FOLDER, rows[1].Kind())
	assert.Equal(t, "docs/", rows[1].Name)
	assert.Equal(t, files.ITEM_KIND_FILE, rows[2].Kind())

	view := RenderFilesView(rows, "/", 0, 0, func(id string) bool { return id == "a1" }, true, 80, 40)
	assert.Contains(t, view, "docs/")
	lines := strings.Split(view, "\n")
	var fileLine string
	for _, line := range lines {
		if strings.Contains(line, "a.txt") {
			fileLine = line
		}
	}
	assert.True(t, strings.HasPrefix(strings.TrimSpace(fileLine), "*"))
}

func TestRenderCalendar(t *testing.T) {
	today := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	grid := calendar.Month(2024, time.February, func(date string) float64 {
		if date == "2024-02-10" {
			return 5
		}
		return 0
	}, today)

	view := RenderCalendar(grid, "2024-02-10", true, 30)
	assert.Contains(t, view, "February 2024")
	assert.Contains(t, view, "29")
	assert.Contains(t, view, "Month  5.0h")
}

func TestRenderStatusBar(t *testing.T) {
	t.Run("Offline", func(t *testing.T) {
		assert.Contains(t, RenderStatusBar(SyncStatus{}, 80), "OFFLINE")
	})

	t.Run("MessageWins", func(t *testing.T) {
		out := RenderStatusBar(SyncStatus{RemoteEnabled: true, Message: "moved 2 items"}, 80)
		assert.Contains(t, out, "moved 2 items")
	})

	t.Run("RejectedToken", func(t *testing.T) {
		out := RenderStatusBar(SyncStatus{
			RemoteEnabled: true,
			NeedsReauth:   true,
			Loaded:        session.LoadResult{Source: session.LOAD_SOURCE_CACHE, RemoteErr: backend.ErrUnauthorized},
		}, 80)
		assert.Contains(t, out, "TOKEN REJECTED")
	})

	t.Run("RejectedTokenOutlivesLaterSaves", func(t *testing.T) {
		out := RenderStatusBar(SyncStatus{
			RemoteEnabled: true,
			NeedsReauth:   true,
			LastSync:      session.SyncResult{At: time.Now(), RemoteErr: backend.ErrUnauthorized},
		}, 80)
		assert.Contains(t, out, "TOKEN REJECTED")
	})

	t.Run("LastSyncOverridesLoad", func(t *testing.T) {
		out := RenderStatusBar(SyncStatus{
			RemoteEnabled: true,
			Loaded:        session.LoadResult{RemoteErr: backend.ErrUnavailable},
			LastSync:      session.SyncResult{At: time.Now(), Pushed: true},
		}, 80)
		assert.Contains(t, out, "SYNCED")
	})

	t.Run("Unavailable", func(t *testing.T) {
		out := RenderStatusBar(SyncStatus{
			RemoteEnabled: true,
			LastSync:      session.SyncResult{At: time.Now(), RemoteErr: backend.ErrUnavailable},
		}, 80)
		assert.Contains(t, out, "REMOTE UNAVAILABLE")
	})
}

func TestRenderDayView(t *testing.T) {
	note := "chapter 3"
	out := RenderDayView(DaySummary{
		Date: "2024-02-10",
		Sessions: []session.Session{
			{StartTime: "09:00", EndTime: "10:30", BreakMinutes: 15, Category: "Study", Note: &note, NetMinutes: 75},
		},
		TotalHours: 10,
		Target:     100,
		Progress:   10,
	}, 80)
	assert.Contains(t, out, "SESSIONS ON 2024-02-10")
	assert.Contains(t, out, "1h 15m")
	assert.Contains(t, out, "90.00h")

	empty := RenderDayView(DaySummary{Date: "2024-02-11", Target: 10, TotalHours: 12}, 80)
	assert.Contains(t, empty, "Nothing logged")
	assert.Contains(t, empty, "target reached")
}

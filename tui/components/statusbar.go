package components

import (
	"fmt"
	"hourbox/session"
)

type SyncStatus struct {
	RemoteEnabled bool
	// NeedsReauth is set once the remote rejected the token
	NeedsReauth bool
	Loaded        session.LoadResult
	LastSync      session.SyncResult
	// Message is the outcome of the last action, shown instead of the sync state
	Message string
	IsError bool
}

// RenderStatusBar summarizes where the sessions came from and whether the
// last change reached the remote store.
func RenderStatusBar(status SyncStatus, width int) string {
	if status.Message != "" {
		if status.IsError {
			return RedStyle.Render("✗  " + status.Message)
		}
		return GreenStyle.Render("✓  " + status.Message)
	}
	if !status.RemoteEnabled {
		return DimStyle.Render("Sync | OFFLINE, local only")
	}

	remoteErr := status.LastSync.RemoteErr
	if status.LastSync.At.IsZero() {
		remoteErr = status.Loaded.RemoteErr
	}
	switch {
	case status.NeedsReauth:
		return RedStyle.Render("Sync | ✗  TOKEN REJECTED, changes saved locally. Run hourbox sync --token")
	case remoteErr != nil:
		return YellowStyle.Render("Sync | REMOTE UNAVAILABLE, changes saved locally")
	case status.LastSync.Pushed:
		return GreenStyle.Render(fmt.Sprintf("Sync | ✓  SYNCED at %s", status.LastSync.At.Local().Format("15:04:05")))
	default:
		return GreenStyle.Render(fmt.Sprintf("Sync | ✓  LOADED %d sessions from %s", status.Loaded.Count, status.Loaded.Source))
	}
}

package cmd_env

import (
	"fmt"
	"hourbox/app"
	"hourbox/config"
	L "hourbox/logger"
)

// ReportSync prints the outcome of the last save. Local failures are
// warnings: the change is still held in memory for this run.
func ReportSync(a *app.App, err error) {
	if err != nil {
		L.Warn(fmt.Sprintf("could not save locally: %v", err))
	}
	result := a.Sessions.LastSync()
	switch {
	case a.NeedsReauth():
		L.Warn("remote rejected the token, saved locally. Run 'hourbox sync --token TOKEN' or set " + config.ENV_TOKEN)
	case result.Pushed:
		L.Debug("synced with remote")
	case result.RemoteErr == nil:
		// local only
	default:
		L.Warn("remote unavailable, saved locally")
	}
}

package tui_cmd

const usageStr string = `
DESCRIPTION
Launches the interactive terminal interface. The left panel is a month
calendar shaded by the hours logged each day; the right panel shows progress
towards the target and the sessions of the selected day, or the file browser.

In the file browser, space selects items, 'm' moves the selection into the
folder under the cursor, 'n' creates a folder, 'e' renames and 'x' deletes.
`

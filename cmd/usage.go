package cmd

const usageStr string = `
DESCRIPTION
hourbox records work sessions against an hour target and keeps files in a
virtual folder tree. Everything is stored locally first and, when a remote is
configured, sessions are synced to it on every change.

COMMANDS
log        Add, edit, remove and list work sessions
stats      Progress toward the target, per month and per day
sync       Push the local session list to the remote
export     Write all sessions to a JSON file or the clipboard
import     Replace all sessions with an exported JSON file
file       Upload, list, fetch, move, preview and delete files
folder     Create, rename, move and delete folders
serve      Run the remote session store
token      Mint a development token for the remote session store
config     Show the config file location and contents
tui        Interactive terminal user interface
version    Print the version

EXAMPLES
1. hourbox log add --date 2024-01-15 --start 09:00 --end 17:30 --break 30 --category Study
2. hourbox stats
3. hourbox file upload ./notes --folder docs

See 'hourbox help <command>' to read about a specific subcommand.
`

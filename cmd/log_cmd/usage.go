package log_cmd

const usageStr string = `
DESCRIPTION
Manages work sessions. A session is a date, a start and end time on that day,
an optional break in minutes, a category and an optional note. Net time is
end - start - break and must be positive; sessions crossing midnight are not
supported, log them as two sessions.

Every change is saved locally and then pushed to the remote when one is
configured. A failed push keeps the change locally.

EXAMPLES
1. hourbox log add --start 09:00 --end 17:30 --break 30 --category Study
2. hourbox log edit 3f2a... --end 18:00
3. hourbox log ls --from 2024-01-01 --to 2024-01-31
4. hourbox log rm 3f2a...
`

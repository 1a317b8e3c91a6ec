package stats_cmd

const usageStr string = `
DESCRIPTION
Prints the total net hours over every session, the hour target and the
progress towards it, followed by a calendar of one month where each day shows
the hours logged on it. Today is marked with '*'.

The target defaults to target_hours from the config until one is set with
--set-target, which is then saved alongside the sessions.

EXAMPLES
1. hourbox stats
2. hourbox stats --month 2024-02
3. hourbox stats --set-target 600
`

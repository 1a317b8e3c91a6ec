package L

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

func HumanReadableBytes(bytes uint64, precision int) string {
	if bytes == 0 {
		return "0 B"
	}
	if precision <= 0 {
		precision = 2
	}
	val := float64(bytes)
	suffixes := []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}
	unit := float64(1024)
	i := 0
	for val >= unit && i < len(suffixes)-1 {
		val /= unit
		i += 1
	}
	if i == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.*f %s", precision, val, suffixes[i])
}

func HttpResponseString(resp *http.Response) string {

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("[%s] Status:%s\n\t\tContent: Cannot read response body %v",
			resp.Request.URL.String(),
			resp.Status, err)
	}

	var sb strings.Builder
	sb.WriteString("\n---Req---\n")
	sb.WriteString(fmt.Sprintf("URL:%s\n", resp.Request.URL))
	sb.WriteString("\n---Req. Headers---\n")
	for key, values := range resp.Request.Header {
		sb.WriteString(fmt.Sprintf("%s : ", key))
		if strings.EqualFold(key, "Authorization") {
			sb.WriteString("<redacted>\n")
			continue
		}
		for _, value := range values {
			sb.WriteString(value)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Resp. Status: %d", resp.StatusCode))
	sb.WriteString("\n---Resp. Headers---\n")
	for key, values := range resp.Header {
		sb.WriteString(fmt.Sprintf("%s : ", key))
		for _, value := range values {
			sb.WriteString(value)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n---Resp. Body---\n")
	resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	sb.WriteString(string(bodyBytes))
	return sb.String()
}

// progressPercentage should be a float64 between 0.0 and 100.0 (inclusive).
func ProgressBar(progressPercentage float64) string {
	const barWidth = 24
	fraction := progressPercentage / 100.0
	fraction = max(fraction, 0.0)
	fraction = min(fraction, 1.0)

	filledWidth := int(float64(barWidth) * fraction)
	emptyWidth := barWidth - filledWidth

	filledSymbol := strings.Repeat("█", filledWidth)
	emptySymbol := strings.Repeat("░", emptyWidth)

	return filledSymbol + emptySymbol
}

type TruncateMode int

const (
	TRUNC_RIGHT TruncateMode = iota
	TRUNC_LEFT
	TRUNC_CENTER
)

// TruncateString shortens input to at most maxLen runes, marking the cut
// with "...". Widths below the marker's length return a prefix of it.
func TruncateString(input string, maxLen int, mode TruncateMode) string {
	const ellipsis = "..."
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(input)
	if len(runes) <= maxLen {
		return input
	}
	if maxLen <= len(ellipsis) {
		return ellipsis[:maxLen]
	}
	keep := maxLen - len(ellipsis)
	switch mode {
	case TRUNC_LEFT:
		return ellipsis + string(runes[len(runes)-keep:])
	case TRUNC_CENTER:
		head := keep / 2
		return string(runes[:head]) + ellipsis + string(runes[len(runes)-(keep-head):])
	default:
		return string(runes[:keep]) + ellipsis
	}
}

// HumanReadableMinutes renders a minute count as e.g. "7h 30m", "45m" or "0m".
func HumanReadableMinutes(minutes int) string {
	if minutes < 0 {
		return fmt.Sprintf("-%s", HumanReadableMinutes(-minutes))
	}
	hours := minutes / 60
	rest := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, rest)
	}
}

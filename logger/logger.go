package L

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// NOTE: populated at build time with -ldflags (-X)
var printCallerLocation string

type LogLevel byte

const (
	DEBUG LogLevel = iota
	INFO
	NORMAL
	WARN
	ERROR
	PANIC
	SILENT
)

type ColorMode int

const (
	COLOR_MODE_AUTO ColorMode = iota
	COLOR_MODE_ALWAYS
	COLOR_MODE_NEVER
)

var (
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	noColorStyle = lipgloss.NewStyle()
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

const (
	debugPrefix  string = "DBG  "
	infoPrefix   string = "INF  "
	normalPrefix string = "     "
	warnPrefix   string = "WRN  "
	errorPrefix  string = "ERR  "
	panicPrefix  string = "PNC  "
)

var (
	level        = INFO
	colorMode    = COLOR_MODE_AUTO
	outMutex     = &sync.Mutex{}
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
	debugLogger  = log.New(stdout, debugPrefix, log.Lmsgprefix)
	infoLogger   = log.New(stdout, infoPrefix, log.Lmsgprefix)
	normalLogger = log.New(stdout, normalPrefix, log.Lmsgprefix)
	warnLogger   = log.New(stdout, warnPrefix, log.Lmsgprefix)
	errorLogger  = log.New(stderr, errorPrefix, log.Lmsgprefix)
	panicLogger  = log.New(stderr, panicPrefix, log.Lmsgprefix)
	footerText   = ""
	footerLines  = 0
	footerLevel  = INFO
)

// cursor sequences
const (
	c_escape     string = "\x1B"
	c_clear_line string = c_escape + "[2K"
	c_up         string = c_escape + "[1A"
)

func init() {
	updateLoggerPrefixColors()
}

func SetLevelFromString(l string) error {
	switch strings.ToLower(l) {
	case "debug":
		level = DEBUG
	case "info":
		level = INFO
	case "warn":
		level = WARN
	case "error":
		level = ERROR
	case "panic":
		level = PANIC
	case "silent":
		level = SILENT
	default:
		return fmt.Errorf("unsupported log level: %s", l)
	}
	return nil
}

func SetLevel(l LogLevel) error {
	switch l {
	case DEBUG, INFO, WARN, ERROR, PANIC, SILENT:
		level = l
	default:
		return fmt.Errorf("unsupported log level: %d", l)
	}
	return nil
}

func SetColorModeFromString(colorModeStr string) error {
	switch strings.ToLower(colorModeStr) {
	case "always":
		colorMode = COLOR_MODE_ALWAYS
	case "never":
		colorMode = COLOR_MODE_NEVER
	case "auto", "":
		colorMode = COLOR_MODE_AUTO
	default:
		return fmt.Errorf("unsupported color mode: %s", colorModeStr)
	}
	updateLoggerPrefixColors()
	return nil
}

func (cm ColorMode) String() string {
	switch cm {
	case COLOR_MODE_ALWAYS:
		return "always"
	case COLOR_MODE_NEVER:
		return "never"
	default:
		return "auto"
	}
}

// SetOutput redirects normal output and error output, mostly for tests.
func SetOutput(out io.Writer, errOut io.Writer) {
	outMutex.Lock()
	defer outMutex.Unlock()
	stdout = out
	stderr = errOut
	for _, l := range []*log.Logger{debugLogger, infoLogger, normalLogger, warnLogger} {
		l.SetOutput(out)
	}
	errorLogger.SetOutput(errOut)
	panicLogger.SetOutput(errOut)
}

func Debug(v ...any) {
	if level <= DEBUG {
		if printCallerLocation == "true" {
			printWithCallerLocation(debugLogger, &debugStyle, fmt.Sprint(v...))
			return
		}
		printWithFooter(debugLogger, &debugStyle, fmt.Sprint(v...))
	}
}

func Info(v ...any) {
	if level <= INFO {
		printWithFooter(infoLogger, &infoStyle, fmt.Sprint(v...))
	}
}

func Warn(v ...any) {
	if level <= WARN {
		printWithFooter(warnLogger, &warnStyle, fmt.Sprint(v...))
	}
}

func Error(v ...any) {
	if level <= ERROR {
		if printCallerLocation == "true" {
			printWithCallerLocation(errorLogger, &errorStyle, fmt.Sprint(v...))
			return
		}
		printWithFooter(errorLogger, &errorStyle, fmt.Sprint(v...))
	}
}

func Panic(v ...any) {
	outMutex.Lock()
	printMultiline(panicLogger, &errorStyle, fmt.Sprint(v...))
	outMutex.Unlock()
	os.Exit(1)
}

func GetLogLevel() LogLevel {
	return level
}

func IsVerbose() bool {
	return level < INFO
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARN:
		return "warn"
	case ERROR:
		return "error"
	case PANIC:
		return "panic"
	case SILENT:
		return "silent"
	default:
		return "unknown"
	}
}

func Printf(format string, v ...any) (int, error) {
	if level >= SILENT {
		return 0, nil
	}
	outMutex.Lock()
	defer outMutex.Unlock()
	clearFooter()
	n, err := fmt.Fprintf(stdout, format, v...)
	footerLines = printFooter()
	return n, err
}

func Print(a ...any) (int, error) {
	return Printf("%s", fmt.Sprint(a...))
}

func Println(a ...any) (int, error) {
	return Printf("%s", fmt.Sprintln(a...))
}

// Footer keeps s pinned below regular output until it is replaced.
// An empty s removes the footer.
func Footer(l LogLevel, s string) {
	outMutex.Lock()
	defer outMutex.Unlock()
	clearFooter()
	footerText = strings.TrimSpace(s)
	footerLevel = l
	footerLines = printFooter()
}

func printWithFooter(logger *log.Logger, style *lipgloss.Style, msg string) {
	outMutex.Lock()
	defer outMutex.Unlock()
	clearFooter()
	printMultiline(logger, style, msg)
	footerLines = printFooter()
}

func printWithCallerLocation(logger *log.Logger, style *lipgloss.Style, msg string) {
	_, file, line, ok := runtime.Caller(2)
	if ok {
		msg = fmt.Sprintf("%s:%d %s", filepath.Base(file), line, msg)
	}
	printWithFooter(logger, style, msg)
}

// every line after the first gets a blank prefix of the same width
func printMultiline(logger *log.Logger, style *lipgloss.Style, msg string) int {
	lines := strings.Split(strings.TrimRight(msg, "\n"), "\n")
	written := 0
	for i, line := range lines {
		if i == 0 {
			logger.Println(line)
		} else {
			fmt.Fprintln(logger.Writer(), colorize(normalPrefix, style)+line)
		}
		written += len(line) + 1
	}
	return written
}

func clearFooter() {
	if footerLines == 0 {
		return
	}
	var sb strings.Builder
	for range footerLines {
		sb.WriteString(c_up)
		sb.WriteString(c_clear_line)
	}
	sb.WriteString("\r")
	fmt.Fprint(stdout, sb.String())
	footerLines = 0
}

func printFooter() int {
	if footerText == "" || level > footerLevel {
		return 0
	}
	fmt.Fprintln(stdout, footerText)
	return strings.Count(footerText, "\n") + 1
}

func colorize(s string, style *lipgloss.Style) string {
	if colorMode == COLOR_MODE_NEVER {
		return s
	}
	return style.Render(s)
}

func updateLoggerPrefixColors() {
	switch colorMode {
	case COLOR_MODE_ALWAYS:
		lipgloss.SetColorProfile(termenv.ANSI256)
	case COLOR_MODE_NEVER:
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
	}
	debugLogger.SetPrefix(colorize(debugPrefix, &debugStyle))
	infoLogger.SetPrefix(colorize(infoPrefix, &infoStyle))
	normalLogger.SetPrefix(colorize(normalPrefix, &noColorStyle))
	warnLogger.SetPrefix(colorize(warnPrefix, &warnStyle))
	errorLogger.SetPrefix(colorize(errorPrefix, &errorStyle))
	panicLogger.SetPrefix(colorize(panicPrefix, &errorStyle))
}

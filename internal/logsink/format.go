package logsink

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"fpvsettling/ai-gateway/internal/domain"
)

const timeLayout = "15:04:05"

// levelColors maps the closed set of level tags to a console style.
// Anything else is printed without colour.
var levelColors = map[domain.LogLevel]*color.Color{
	domain.LogLevelDebug: color.New(color.FgHiBlack),
	domain.LogLevelInfo:  color.New(color.FgGreen),
	domain.LogLevelWarn:  color.New(color.FgYellow),
	domain.LogLevelError: color.New(color.FgRed),
}

var bold = color.New(color.Bold)

// lineBreaks keeps one event on one line of the log file.
var lineBreaks = strings.NewReplacer("\r\n", `\n`, "\r", `\r`, "\n", `\n`)

func oneLine(s string) string {
	return lineBreaks.Replace(s)
}

func levelColor(level domain.LogLevel) *color.Color {
	if c, ok := levelColors[domain.LogLevel(strings.ToUpper(string(level)))]; ok {
		return c
	}
	return nil
}

// FileLine renders an event the way it is stored in the log file:
// "[HH:MM:SS] [LEVEL] [ORIGIN] [SOURCE] MESSAGE\n". Line breaks inside
// fields are written as the two-character escapes \n and \r.
func FileLine(ts time.Time, event domain.LogEvent) string {
	return fmt.Sprintf("[%s] [%-5s] [%s] [%s] %s\n",
		ts.Format(timeLayout),
		oneLine(string(event.Level)),
		oneLine(event.Origin()),
		oneLine(event.SourceName()),
		oneLine(event.Message),
	)
}

// ConsoleLine renders the same fields with a bold timestamp and a coloured level.
func ConsoleLine(ts time.Time, event domain.LogEvent) string {
	level := fmt.Sprintf("[%-5s]", oneLine(string(event.Level)))
	if c := levelColor(event.Level); c != nil {
		level = c.Sprint(level)
	}

	return fmt.Sprintf("%s %s [%s] [%s] %s\n",
		bold.Sprintf("[%s]", ts.Format(timeLayout)),
		level,
		oneLine(event.Origin()),
		oneLine(event.SourceName()),
		oneLine(event.Message),
	)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

package cli

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// logFormatEnv selects the log encoding: text (default), logfmt or json.
const logFormatEnv = "TILER_LOG_FORMAT"

// newLogger returns a logger writing "15:04:05.00"-stamped lines to w.
// Keys that carry layout geometry are highlighted in text mode.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Formatter:       logFormatter(os.Getenv(logFormatEnv)),
	})
	styles := log.DefaultStyles()
	for _, key := range []string{"shape", "scale", "layout"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(colorCyan)
	}
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(colorRed)
	l.SetStyles(styles)
	return l
}

func logFormatter(name string) log.Formatter {
	switch strings.ToLower(name) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// stopwatch logs a message with the time elapsed since it was started.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) stopwatch {
	return stopwatch{logger: l, start: time.Now()}
}

// done logs e.g. "Rendered 3 format(s) (12ms)".
func (s stopwatch) done(msg string, keyvals ...any) {
	s.logger.Info(msg+" ("+time.Since(s.start).Round(time.Millisecond).String()+")", keyvals...)
}

package autogen

import (
	"fmt"
	"io"

	"github.com/dkinzler/autogen/log"

	"github.com/fatih/color"
)

// Reporter receives the diagnostics produced while planning a service.
type Reporter interface {
	Report(d Diagnostic)
}

type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) {
	f(d)
}

// ConsoleReporter writes one line per diagnostic, e.g. to stderr, and logs it as a warning.
type ConsoleReporter struct {
	w      io.Writer
	logger *log.Logger
	marker *color.Color
}

// Logger can be nil.
func NewConsoleReporter(w io.Writer, logger *log.Logger) *ConsoleReporter {
	return &ConsoleReporter{
		w:      w,
		logger: logger,
		marker: color.New(color.FgYellow, color.Bold),
	}
}

func (r *ConsoleReporter) Report(d Diagnostic) {
	r.marker.Fprint(r.w, "! ")
	fmt.Fprintln(r.w, d.String())
	if r.logger != nil {
		r.logger.Warn().Log(
			"msg", "scheduler directive downgraded",
			"service", d.Service,
			"method", d.Method,
			"declared", string(d.Declared),
			"shape", d.Shape.String(),
		)
	}
}

// Collector keeps all reported diagnostics in memory.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

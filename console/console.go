package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/goforj/cachecheck"
)

var (
	_ cachecheck.Reporter = (*Console)(nil)
	_ cachecheck.Observer = (*Console)(nil)
)

// Console reports check progress. Status lines go to the logger's writer,
// the banner to the separate banner writer.
type Console struct {
	log    *logrus.Logger
	banner io.Writer
	color  bool
}

// Option configures a Console.
type Option func(*Console)

// WithColor forces colour on or off.
func WithColor(enabled bool) Option {
	return func(c *Console) { c.color = enabled }
}

// WithVerbose enables DEBUG lines, including per-operation timings.
func WithVerbose(enabled bool) Option {
	return func(c *Console) {
		if enabled {
			c.log.SetLevel(logrus.DebugLevel)
		}
	}
}

// New builds a Console writing the banner to stdout and status lines to stderr.
// Colour defaults to whether stderr is a terminal.
func New(stdout, stderr io.Writer, opts ...Option) *Console {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.InfoLevel)
	c := &Console{
		log:    log,
		banner: stdout,
		color:  IsTerminal(stderr),
	}
	for _, opt := range opts {
		opt(c)
	}
	log.SetFormatter(&Formatter{Color: c.color})
	return c
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Logger exposes the underlying logger.
func (c *Console) Logger() *logrus.Logger { return c.log }

// Info writes a plain status line.
func (c *Console) Info(format string, args ...any) {
	c.log.Infof(format, args...)
}

// OK writes a line tagged [OK].
func (c *Console) OK(format string, args ...any) {
	c.log.WithField(StatusField, statusOK).Infof(format, args...)
}

// Warn writes a line tagged [WARN].
func (c *Console) Warn(format string, args ...any) {
	c.log.Warnf(format, args...)
}

// Error writes a line tagged [ERROR].
func (c *Console) Error(format string, args ...any) {
	c.log.Errorf(format, args...)
}

// Debug writes a line tagged [DEBUG]; it is dropped unless verbose.
func (c *Console) Debug(format string, args ...any) {
	c.log.Debugf(format, args...)
}

// OnCacheOp logs every store operation at debug level.
func (c *Console) OnCacheOp(_ context.Context, op string, key string, hit bool, err error, dur time.Duration, driver cachecheck.Driver) {
	if !c.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	line := fmt.Sprintf("%s %s", driver, op)
	if key != "" {
		line += " " + key
	}
	line += " in " + dur.Round(time.Microsecond).String()
	if op == "get" {
		line += fmt.Sprintf(" hit=%t", hit)
	}
	if err != nil {
		line += fmt.Sprintf(" err=%v", err)
	}
	c.Debug("%s", line)
}

var bannerArt = []string{
	"   ___ _                 _     _                 _",
	"  / __\\ | ___  _   _  __| |   /_\\   ___ __ _  __| | ___ _ __ ___  _   _",
	" / /  | |/ _ \\| | | |/ _` |  //_\\\\ / __/ _` |/ _` |/ _ \\ '_ ` _ \\| | | |",
	"/ /___| | (_) | |_| | (_| | /  _  \\ (_| (_| | (_| |  __/ | | | | | |_| |",
	"\\____/|_|\\___/ \\__,_|\\__,_| \\_/ \\_/\\___\\__,_|\\__,_|\\___|_| |_| |_|\\__, |",
}

const (
	bannerLink = " https://cloudacademy.com/labs/                               LABS "
	bannerTail = "|___/"
	bannerRule = "------------------------------------------------------------------------"
)

// Banner prints the welcome art, script title and description.
func (c *Console) Banner(title, description string) {
	var b strings.Builder
	b.WriteString(c.paint(colorWhite, strings.Join(bannerArt, "\n")))
	b.WriteString("\n")
	b.WriteString(c.paint(colorGreen, bannerLink))
	b.WriteString(c.paint(colorWhite, bannerTail))
	b.WriteString("\n\n ")
	b.WriteString(title)
	b.WriteString("\n\n ")
	b.WriteString(description)
	b.WriteString("\n")
	b.WriteString(bannerRule)
	b.WriteString("\n\n")
	_, _ = io.WriteString(c.banner, b.String())
}

func (c *Console) paint(color, s string) string {
	if !c.color {
		return s
	}
	return color + s + colorReset
}

package console

import (
	"bytes"

	"github.com/sirupsen/logrus"
)

// StatusField marks an Info entry as a success line.
const StatusField = "status"

const statusOK = "ok"

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[0;31m"
	colorMagenta = "\033[1;35m"
	colorBlue    = "\033[1;34m"
	colorCyan    = "\033[0;36m"
	colorWhite   = "\033[0;37m"
	colorGreen   = "\033[0;32m"
)

// Formatter writes one severity-tagged line per entry. Fields other than
// StatusField are not rendered.
type Formatter struct {
	Color bool
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}
	tag, color := decorate(entry)
	if f.Color {
		b.WriteString(color)
	}
	if tag != "" {
		b.WriteString("[")
		b.WriteString(tag)
		b.WriteString("] ")
	}
	b.WriteString(entry.Message)
	if f.Color {
		b.WriteString(colorReset)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func decorate(entry *logrus.Entry) (tag, color string) {
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return "ERROR", colorRed
	case logrus.WarnLevel:
		return "WARN", colorMagenta
	case logrus.DebugLevel, logrus.TraceLevel:
		return "DEBUG", colorWhite
	}
	if entry.Data[StatusField] == statusOK {
		return "OK", colorBlue
	}
	return "", colorCyan
}

// Package logger emits the timestamped run log shared by every clawadm
// command. Lines go to stdout always and, best effort, to a log file so a
// provisioning run leaves a trace on the host even when launched from
// cloud-init with no terminal attached.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const tag = "openclaw"

var log = newLogger(os.Stdout)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(lineFormatter{})
	return l
}

// lineFormatter renders `[2006-01-02 15:04:05] [openclaw] message` lines,
// matching the format the gateway fleet's log shippers already parse.
// Warnings carry a "Warning: " prefix instead of a separate level column.
type lineFormatter struct{}

func (lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	msg := entry.Message
	if entry.Level <= logrus.WarnLevel {
		msg = "Warning: " + msg
	}
	return []byte(fmt.Sprintf("[%s] [%s] %s\n", entry.Time.Format("2006-01-02 15:04:05"), tag, msg)), nil
}

// Init attaches the log file sink and stamps the run with a correlation id.
// A file that cannot be opened (typically EACCES when running unprivileged)
// is skipped without complaint; stdout logging is unaffected.
func Init(logFile string) {
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}
	log.Infof("run id: %s", uuid.NewString())
}

// SetOutput redirects all log lines, primarily for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// AddHook registers a logrus hook, primarily for tests asserting on
// warning traffic.
func AddHook(h logrus.Hook) {
	log.AddHook(h)
}

// Infof logs a progress line.
func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

// Warnf logs a non-fatal degradation. Nothing in clawadm treats a warning
// as a reason to stop.
func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

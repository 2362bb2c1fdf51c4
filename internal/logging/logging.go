// Package logging configures the package-level structured logger used
// across the daemon. It wraps logrus the way the rest of this corpus does
// (iota-uz-iota-sdk, jesseduffield-lazydocker): a single configured
// *logrus.Logger, leveled, with structured fields rather than formatted
// strings.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(logrus.InfoLevel)
	log.SetOutput(os.Stderr)
}

// Configure applies the daemon's --verbose and --log-file flags. Call once
// at startup before any handler runs.
func Configure(verbose bool, logFile string) error {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	var out io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		out = f
	}
	log.SetOutput(out)
	return nil
}

func Debug(msg string, fields ...any) { entry(fields...).Debug(msg) }
func Info(msg string, fields ...any)  { entry(fields...).Info(msg) }
func Warn(msg string, fields ...any)  { entry(fields...).Warn(msg) }
func Error(msg string, fields ...any) { entry(fields...).Error(msg) }

// entry turns a flat ...any of alternating key/value pairs into a
// logrus.Fields entry, mirroring slog's calling convention without adding
// another logging dependency on top of logrus.
func entry(fields ...any) *logrus.Entry {
	if len(fields) == 0 {
		return logrus.NewEntry(log)
	}
	f := make(logrus.Fields, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		f[key] = fields[i+1]
	}
	return log.WithFields(f)
}

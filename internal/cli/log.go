package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/iconify/config"
	"github.com/ds124wfegd/iconify/internal/entity"
)

// setupLogging points the global logrus logger at w.
// verbose forces debug level regardless of the configured one.
func setupLogging(w io.Writer, cfg config.LogConfig, verbose bool) error {
	logrus.SetOutput(w)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logrus.SetFormatter(new(logrus.JSONFormatter))
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.00"})
	default:
		return fmt.Errorf("%w: log format %q", entity.ErrInvalidConfig, cfg.Format)
	}

	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		level = parsed
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	return nil
}

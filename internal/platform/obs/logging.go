package obs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOptions configures the process-wide logger.
type LogOptions struct {
	Level string
	// File, when set, also receives every entry through a size-rotated writer.
	File string
	// Output replaces stderr as the console destination when set.
	Output io.Writer
}

// SetupLogging configures logrus for the process. Entries go to stderr so that
// stdout stays reserved for solver output.
func SetupLogging(opts LogOptions) error {
	level := log.InfoLevel
	if opts.Level != "" {
		lvl, err := log.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("setup logging: parse level %q: %w", opts.Level, err)
		}
		level = lvl
	}

	var console io.Writer = os.Stderr
	if opts.Output != nil {
		console = opts.Output
	}

	out := console
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return fmt.Errorf("setup logging: create log dir for %q: %w", opts.File, err)
		}
		out = io.MultiWriter(console, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // MB
			MaxBackups: 7,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetLevel(level)
	return nil
}

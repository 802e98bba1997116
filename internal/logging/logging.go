// /internal/logging/logging.go
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup routes the standard logger to stderr and a size-rotated log file.
// An empty path keeps plain stderr logging.
func Setup(path string) {
	log.SetFlags(log.LstdFlags)

	if path == "" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}

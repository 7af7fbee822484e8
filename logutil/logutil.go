package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	logFileName  = "tts_reader.log"
	maxSizeBytes = 10 * 1024 * 1024 // 10 MB
	maxArchives  = 3
)

// Setup enables file logging with basic size-based rotation (10MB, max 3
// archives). When disabled, logs go to stderr only.
func Setup(enableFileLogging bool) string {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if !enableFileLogging {
		log.SetOutput(os.Stderr)
		return ""
	}
	path := logPath()
	rotateIfNeeded(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return ""
	}
	log.SetOutput(io.MultiWriter(os.Stderr, &rotatingWriter{f: f, path: path}))
	return path
}

// Path returns the log file location without touching the log configuration.
func Path() string { return logPath() }

func logPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		full := filepath.Join(dir, "tts-reader")
		if err := os.MkdirAll(full, 0755); err == nil {
			return filepath.Join(full, logFileName)
		}
	}
	return logFileName
}

type rotatingWriter struct {
	f    *os.File
	path string
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	// naive rotation check per write
	if st, err := w.f.Stat(); err == nil && st.Size()+int64(len(p)) > maxSizeBytes {
		_ = w.f.Close()
		rotateIfNeeded(w.path)
		nf, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return 0, err
		}
		w.f = nf
	}
	return w.f.Write(p)
}

func rotateIfNeeded(path string) {
	// If base exceeds max size, rotate: .1, .2, .3 (oldest discarded)
	if st, err := os.Stat(path); err == nil && st.Size() > maxSizeBytes {
		_ = os.Remove(archiveName(path, maxArchives))
		for i := maxArchives - 1; i >= 1; i-- {
			_ = os.Rename(archiveName(path, i), archiveName(path, i+1))
		}
		_ = os.Rename(path, archiveName(path, 1))
	}
}

func archiveName(path string, n int) string { return fmt.Sprintf("%s.%d", path, n) }

// RedactKey masks an API key, leaving first/last 4 chars: xxxx...yyyy
func RedactKey(k string) string {
	if len(k) <= 8 {
		return "********"
	}
	return fmt.Sprintf("%s...%s", k[:4], k[len(k)-4:])
}

// Sanitize flattens control characters and truncates captured text so a log
// line stays a single line.
func Sanitize(text string) string {
	safe := strings.ReplaceAll(text, "\n", "\\n")
	safe = strings.ReplaceAll(safe, "\r", "\\r")
	safe = strings.ReplaceAll(safe, "\t", "\\t")
	if len(safe) > 100 {
		safe = safe[:100] + "..."
	}
	return safe
}

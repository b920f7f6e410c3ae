// Package runlog appends one JSON line per analysis run to a date-named file.
// The rollover is just the filename computed at write time.
package runlog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Logger struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

type Entry struct {
	Time       string   `json:"time"`
	Symbol     string   `json:"symbol"`
	Signal     string   `json:"signal"`
	Confidence int      `json:"confidence"`
	Summary    string   `json:"summary,omitempty"`
	Articles   int      `json:"articles"`
	Sources    []string `json:"sources,omitempty"`
}

// New creates a run logger writing under dir. The clock is injectable for
// rollover tests.
func New(dir string, now func() time.Time) *Logger {
	if dir == "" {
		dir = "logs"
	}
	if now == nil {
		now = time.Now
	}
	return &Logger{dir: dir, now: now}
}

func (l *Logger) dailyFilepath(t time.Time) string {
	return filepath.Join(l.dir, t.Format("2006-01-02")+".log")
}

// Append writes one entry to today's file, creating the directory and the
// file as needed.
func (l *Logger) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e.Time = now.Format("2006-01-02 15:04:05")
	p := l.dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, _ := json.Marshal(e)
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips log files whose mtime is older than retentionDays.
func (l *Logger) CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := l.now().AddDate(0, 0, -retentionDays)
	return filepath.WalkDir(l.dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".log" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		gz := p + ".gz"
		if _, e := os.Stat(gz); e == nil {
			return os.Remove(p)
		}
		in, e := os.Open(p)
		if e != nil {
			return nil
		}
		defer in.Close()
		out, e := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if e != nil {
			return nil
		}
		gw := gzip.NewWriter(out)
		if _, e = io.Copy(gw, in); e == nil {
			_ = gw.Close()
			_ = out.Close()
			return os.Remove(p)
		}
		_ = gw.Close()
		_ = out.Close()
		return nil
	})
}

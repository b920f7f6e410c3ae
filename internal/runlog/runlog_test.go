package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	l := New(dir, func() time.Time { return fixed })

	err := l.Append(Entry{Symbol: "AAPL", Signal: "BUY", Confidence: 7, Articles: 4})
	if err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "2026-03-14.log"))
	if err != nil {
		t.Fatal(err)
	}
	line := string(b)
	if !strings.Contains(line, `"symbol":"AAPL"`) {
		t.Errorf("missing symbol in entry: %s", line)
	}
	if !strings.Contains(line, `"time":"2026-03-14 10:30:00"`) {
		t.Errorf("missing timestamp in entry: %s", line)
	}
}

func TestAppendRollsOverAtMidnight(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	l := New(dir, func() time.Time { return now })

	if err := l.Append(Entry{Symbol: "AAPL", Signal: "HOLD"}); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)
	if err := l.Append(Entry{Symbol: "AAPL", Signal: "HOLD"}); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"2026-03-14.log", "2026-03-15.log"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	l := New(dir, time.Now)

	old := filepath.Join(dir, "2020-01-01.log")
	if err := os.WriteFile(old, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	if err := l.CompressOlder(7); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expected old log to be removed after compression")
	}
	if _, err := os.Stat(old + ".gz"); err != nil {
		t.Errorf("expected gzipped log to exist: %v", err)
	}
}

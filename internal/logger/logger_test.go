package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []Entry {
	t.Helper()
	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("Unmarshal(%q) error = %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool
	}{
		{name: "info message", level: LevelInfo, message: "fetched", fields: Fields{"dataset": "teams"}, want: true},
		{name: "debug below threshold", level: LevelDebug, message: "raw body", want: false},
		{name: "error with err", level: LevelError, message: "fetch failed", err: errors.New("HTTP 500"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(LevelInfo, &buf)
			l.log(tt.level, tt.message, tt.fields, tt.err)

			if logged := buf.Len() > 0; logged != tt.want {
				t.Fatalf("log() logged = %v, want %v", logged, tt.want)
			}
			if !tt.want {
				return
			}

			entries := decodeLines(t, &buf)
			if entries[0].Message != tt.message || entries[0].Level != string(tt.level) {
				t.Errorf("entry = %+v", entries[0])
			}
			if tt.err != nil && entries[0].Error != tt.err.Error() {
				t.Errorf("Error = %q, want %q", entries[0].Error, tt.err.Error())
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug logs at debug", LevelDebug, LevelDebug, true},
		{"info logs at debug", LevelDebug, LevelInfo, true},
		{"debug doesn't log at info", LevelInfo, LevelDebug, false},
		{"warn doesn't log at error", LevelError, LevelWarn, false},
		{"error always logs", LevelDebug, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.minLevel, nil).Enabled(tt.logLevel); got != tt.shouldLog {
				t.Errorf("Enabled() = %v, want %v", got, tt.shouldLog)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"", LevelInfo, false},
		{"debug", LevelDebug, false},
		{" Warning ", LevelWarn, false},
		{"ERROR", LevelError, false},
		{"trace", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, %v", tt.input, got, err)
		}
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := New(LevelInfo, &buf)
	child := base.With(Fields{"load_id": "abc"})

	child.Info("fetched", Fields{"dataset": "schedule"})
	base.Info("plain", nil)

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Fields["load_id"] != "abc" || entries[0].Fields["dataset"] != "schedule" {
		t.Errorf("child fields = %v", entries[0].Fields)
	}
	if _, ok := entries[1].Fields["load_id"]; ok {
		t.Error("With() leaked fields into the parent logger")
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.With(Fields{"n": i}).Info("line", nil)
		}(i)
	}
	wg.Wait()

	if got := len(decodeLines(t, &buf)); got != 20 {
		t.Errorf("got %d entries, want 20", got)
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("fetch.count")
	m.IncrCounter("fetch.count")
	m.AddCounter("fetch.bytes", 1024)
	m.SetGauge("site.pages", 4)
	m.SetGauge("site.pages", 5)
	m.RecordTiming("fetch.teams", 100*time.Millisecond)
	m.RecordTiming("fetch.teams", 200*time.Millisecond)
	m.RecordTiming("fetch.teams", 150*time.Millisecond)

	s := m.Snapshot()
	if s.Counters["fetch.count"] != 2 || s.Counters["fetch.bytes"] != 1024 {
		t.Errorf("Counters = %v", s.Counters)
	}
	if s.Gauges["site.pages"] != 5 {
		t.Errorf("Gauge = %v, want 5", s.Gauges["site.pages"])
	}

	timing := s.Timings["fetch.teams"]
	if timing.Count != 3 || timing.Min != "100ms" || timing.Max != "200ms" || timing.Average != "150ms" {
		t.Errorf("Timing = %+v", timing)
	}

	f := s.Fields()
	if f["fetch.bytes"] != int64(1024) {
		t.Errorf("Fields()[fetch.bytes] = %v", f["fetch.bytes"])
	}
}

func TestPackageLevelLogging(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(New(LevelDebug, &buf))
	defer SetDefault(prev)

	Debug("test debug", nil)
	Info("test info", Fields{"key": "value"})
	Warn("test warning", nil)
	Error("test error", Fields{"component": "test"}, errors.New("test"))
	With(Fields{"k": "v"}).Info("child", nil)

	if got := len(decodeLines(t, &buf)); got != 5 {
		t.Errorf("got %d entries, want 5", got)
	}
}

package logger

import (
	"bytes"
	"strings"
	"testing"
)

// logged reports whether out holds a line with the given prefix and message.
// The timestamp between them is ignored.
func logged(out, prefix, msg string) bool {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, prefix) && strings.HasSuffix(line, " "+msg) {
			return true
		}
	}
	return false
}

func TestLevels(t *testing.T) {
	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelOff, false, false},
		{LevelNormal, false, true},
		{LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)
			log.Debug("debug %d", 1)
			log.Info("info %d", 2)

			out := buf.String()
			if got := logged(out, "[DBG] ", "debug 1"); got != tt.wantDebug {
				t.Fatalf("debug written=%v, want %v: %q", got, tt.wantDebug, out)
			}
			if got := logged(out, "[INF] ", "info 2"); got != tt.wantInfo {
				t.Fatalf("info written=%v, want %v: %q", got, tt.wantInfo, out)
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelOff, &buf)
	log.Warn("hidden")
	log.SetLevel(LevelNormal)
	log.Warn("shown")

	if log.GetLevel() != LevelNormal {
		t.Fatalf("expected normal, got %s", log.GetLevel())
	}
	out := buf.String()
	if strings.Contains(out, "hidden") || !logged(out, "[WRN] ", "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestLineFormat(t *testing.T) {
	var buf bytes.Buffer
	New(LevelNormal, &buf).Error("boom %s", "now")

	line := strings.TrimSuffix(buf.String(), "\n")
	// [ERR] hh:mm:ss boom now
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "[ERR]" || len(fields[1]) != len("15:04:05") || fields[2] != "boom" {
		t.Fatalf("unexpected line %q", line)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   Level
		wantOK bool
	}{
		{"off", LevelOff, true},
		{"Verbose", LevelVerbose, true},
		{" debug ", LevelVerbose, true},
		{"", LevelNormal, true},
		{"loud", LevelNormal, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("ParseLevel(%q) = %s, %v; want %s, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

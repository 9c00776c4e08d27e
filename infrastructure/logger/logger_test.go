package logger

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		wantErr       bool
	}{
		{"debug", "console", false},
		{"info", "json", false},
		{"", "", false}, // defaults
		{"verbose", "json", true},
	}
	for _, tt := range tests {
		log, err := New(tt.level, tt.format)
		if tt.wantErr {
			if err == nil {
				t.Errorf("New(%q, %q): expected error", tt.level, tt.format)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%q, %q): %v", tt.level, tt.format, err)
			continue
		}
		if log == nil {
			t.Errorf("New(%q, %q): nil logger", tt.level, tt.format)
		}
	}
}

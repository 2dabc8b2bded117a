package pomomo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDurations(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		want    Durations
		wantErr bool
	}{
		{
			name: "empty path",
			path: func(*testing.T) string { return "" },
			want: DefaultDurations(),
		},
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			want: DefaultDurations(),
		},
		{
			name: "overrides",
			path: func(t *testing.T) string { return writeSettings(t, "work_seconds: 3000\nbreak_seconds: 600\n") },
			want: Durations{Work: 3000, Break: 600},
		},
		{
			name: "partial",
			path: func(t *testing.T) string { return writeSettings(t, "break_seconds: 60\n") },
			want: Durations{Work: DefaultWorkSeconds, Break: 60},
		},
		{
			name: "non-positive ignored",
			path: func(t *testing.T) string { return writeSettings(t, "work_seconds: 0\nbreak_seconds: -5\n") },
			want: DefaultDurations(),
		},
		{
			name:    "bad yaml",
			path:    func(t *testing.T) string { return writeSettings(t, "work_seconds: [\n") },
			want:    DefaultDurations(),
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LoadDurations(tc.path(t))
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDurations_Nominal(t *testing.T) {
	d := Durations{Work: 10, Break: 3}

	assert.Equal(t, 10, d.Nominal(WorkSession))
	assert.Equal(t, 3, d.Nominal(BreakSession))
	assert.Equal(t, WorkSession, BreakSession.Next())
	assert.Equal(t, BreakSession, WorkSession.Next())
}

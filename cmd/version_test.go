package cmd

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionLines(t *testing.T) {
	tests := []struct {
		name string
		info *debug.BuildInfo
		ok   bool
		want []string
	}{
		{
			name: "no build info",
			want: []string{"fixtura version\t unknown", "store driver\t sqlite"},
		},
		{
			name: "empty main version",
			info: &debug.BuildInfo{GoVersion: "go1.25.1"},
			ok:   true,
			want: []string{"fixtura version\t unknown", "store driver\t sqlite"},
		},
		{
			name: "released build",
			info: &debug.BuildInfo{GoVersion: "go1.25.1", Main: debug.Module{Version: "v0.3.0"}},
			ok:   true,
			want: []string{"fixtura version\t v0.3.0", "go version\t go1.25.1", "store driver\t sqlite"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, versionLines(tt.info, tt.ok, "sqlite"))
		})
	}
}

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "fixtura version")
	assert.Contains(t, out.String(), "store driver")
}

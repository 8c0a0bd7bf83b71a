package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "https://api.test", "-i", "10", "-d", "/tmp/wf", "-b", "/tmp/wf.db", "-l", "debug"}, expectPanic: false,
			expected: &Config{APIBaseURL: "https://api.test", OnlineCheckInterval: 10 * time.Second, CacheDir: "/tmp/wf", DatabasePath: "/tmp/wf.db", LogLevel: "debug"}},
		{name: "Test2 incorrect check interval", args: []string{"cmd", "-a", "https://api.test", "-i", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

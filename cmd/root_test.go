package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"labelpc/internal/app"
	"labelpc/internal/cli"
	"labelpc/internal/config"
	"labelpc/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWindow struct{}

func (stubWindow) Show(context.Context) error { return nil }

type harness struct {
	home     string
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	launches []app.Launch
}

// newHarness points HOME at a temp dir so the default config and settings
// paths never touch the real user files.
func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return &harness{home: home}
}

func (h *harness) run(args ...string) int {
	return run(context.Background(), args, &h.stdout, &h.stderr,
		app.WithWindowFactory(func(l app.Launch) (app.Window, error) {
			h.launches = append(h.launches, l)
			return stubWindow{}, nil
		}),
	)
}

func (h *harness) writeRC(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(h.home, config.DefaultConfigFileName), []byte(content), 0644))
}

func TestSetVersion(t *testing.T) {
	original := GetVersion()
	defer SetVersion(original)

	SetVersion("1.2.3-test")
	assert.Equal(t, "1.2.3-test", GetVersion())
	assert.Equal(t, "1.2.3-test", newRootCmd().Version)
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "labelpc [filename]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)
	assert.Empty(t, cmd.Commands())
}

func TestVersionFlag(t *testing.T) {
	original := GetVersion()
	defer SetVersion(original)
	SetVersion("4.5.6")

	for _, flag := range []string{"--version", "-V"} {
		h := newHarness(t)
		code := h.run(flag)
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "labelpc 4.5.6\n", h.stdout.String())
		assert.Empty(t, h.launches)
	}
}

func TestLaunch_Defaults(t *testing.T) {
	h := newHarness(t)

	code := h.run()
	require.Equal(t, ExitCodeSuccess, code, h.stderr.String())
	require.Len(t, h.launches, 1)

	l := h.launches[0]
	assert.Empty(t, l.Filename)
	assert.Equal(t, cli.OutputNone, l.Output.Kind)
	assert.True(t, l.Config.SortLabels())
	assert.NotContains(t, h.stderr.String(), "No config file found")
}

func TestLaunch_Precedence(t *testing.T) {
	h := newHarness(t)
	h.writeRC(t, "auto_save: true\nlabels: [a, b]\nsort_labels: true\n")

	code := h.run("img.png", "--labels", "x,y", "--nosortlabels", "-O", "out.json")
	require.Equal(t, ExitCodeSuccess, code, h.stderr.String())
	require.Len(t, h.launches, 1)

	l := h.launches[0]
	assert.Equal(t, "img.png", l.Filename)
	assert.Equal(t, []string{"x", "y"}, l.Config.Labels())
	assert.True(t, l.Config.AutoSave())
	assert.False(t, l.Config.SortLabels())
	assert.Equal(t, cli.OutputTarget{Kind: cli.OutputFile, Path: "out.json"}, l.Output)
}

func TestLaunch_AbsentFlagKeepsFileValue(t *testing.T) {
	h := newHarness(t)
	h.writeRC(t, "store_data: false\nkeep_prev: true\n")

	code := h.run()
	require.Equal(t, ExitCodeSuccess, code, h.stderr.String())
	require.Len(t, h.launches, 1)
	assert.False(t, h.launches[0].Config.StoreData())
	assert.True(t, h.launches[0].Config.KeepPrev())
}

func TestLaunch_LabelsFromFile(t *testing.T) {
	h := newHarness(t)
	labels := filepath.Join(h.home, "labels.txt")
	require.NoError(t, os.WriteFile(labels, []byte("__ignore__\ncat\ndog\n"), 0644))

	code := h.run("--labels", labels, "--validatelabel", "exact")
	require.Equal(t, ExitCodeSuccess, code, h.stderr.String())
	require.Len(t, h.launches, 1)
	assert.Equal(t, []string{"__ignore__", "cat", "dog"}, h.launches[0].Config.Labels())
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		rc       string
		args     []string
		expected int
		stderr   string
	}{
		{
			name:     "validate label without labels",
			args:     []string{"--validatelabel", "exact"},
			expected: ExitCodeError,
			stderr:   config.MissingLabelsMessage,
		},
		{
			name:     "validate label in file without labels",
			rc:       "validate_label: exact\n",
			expected: ExitCodeError,
			stderr:   "--labels must be specified",
		},
		{
			name:     "malformed label flags",
			args:     []string{"--labelflags", "{person: [tall"},
			expected: ExitCodeUsage,
			stderr:   "failed to parse label_flags from inline value",
		},
		{
			name:     "malformed inline config",
			args:     []string{"--config", "[not, a, mapping]"},
			expected: ExitCodeUsage,
			stderr:   "expected a mapping",
		},
		{
			name:     "unknown config key",
			rc:       "auto_sav: true\n",
			expected: ExitCodeUsage,
			stderr:   "unknown configuration key(s) in",
		},
		{
			name:     "unknown flag",
			args:     []string{"--nope"},
			expected: ExitCodeUsage,
			stderr:   "unknown flag: --nope",
		},
		{
			name:     "invalid choice",
			args:     []string{"--validatelabel", "fuzzy"},
			expected: ExitCodeUsage,
			stderr:   "invalid choice",
		},
		{
			name:     "too many positional arguments",
			args:     []string{"a.png", "b.png"},
			expected: ExitCodeUsage,
			stderr:   "labelpc --help",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.rc != "" {
				h.writeRC(t, tt.rc)
			}

			code := h.run(tt.args...)
			assert.Equal(t, tt.expected, code)
			assert.Contains(t, h.stderr.String(), tt.stderr)
			assert.Empty(t, h.launches, "no window may be constructed on error")
		})
	}
}

// Values the GUI tolerates must not stop the launch; they are only logged.
func TestLaunch_SuspiciousValuesStillLaunch(t *testing.T) {
	tests := []struct {
		name string
		args []string
		warn string
	}{
		{"duplicate labels", []string{"--labels", "cat,cat"}, "duplicate label"},
		{"zero epsilon", []string{"--epsilon", "0"}, "should be greater than zero"},
		{"lookahead pattern", []string{"--labelflags", "{'person-(?!x).*': [tall]}"}, "does not compile as a Go regular expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			code := h.run(tt.args...)
			assert.Equal(t, ExitCodeSuccess, code, h.stderr.String())
			assert.Len(t, h.launches, 1)
			assert.Contains(t, h.stderr.String(), "level=WARN")
			assert.Contains(t, h.stderr.String(), tt.warn)
		})
	}
}

func TestLaunch_ShortcutLists(t *testing.T) {
	h := newHarness(t)
	code := h.run("--config", "{shortcuts: {open_next: [N, Ctrl+Shift+N], quit: null}}")
	require.Equal(t, ExitCodeSuccess, code, h.stderr.String())
	require.Len(t, h.launches, 1)

	shortcuts := h.launches[0].Config.Section(config.KeyShortcuts)
	assert.Equal(t, []string{"N", "Ctrl+Shift+N"}, shortcuts["open_next"])
	assert.Equal(t, []string{"Ctrl++", "Ctrl+="}, shortcuts["zoom_in"])
	assert.Nil(t, shortcuts["quit"])
}

func TestLaunchFailureIsLogged(t *testing.T) {
	h := newHarness(t)

	code := h.run("--logger-level", "fatal", "--validatelabel", "exact")
	assert.Equal(t, ExitCodeError, code)
	assert.Empty(t, h.launches)

	stderr := h.stderr.String()
	assert.Contains(t, stderr, "level=FATAL")
	assert.Contains(t, stderr, "subsystem=Launcher")
	assert.Contains(t, stderr, "--labels must be specified")
	assert.NotContains(t, stderr, "Error:")
}

func TestUsageErrorIsPrinted(t *testing.T) {
	h := newHarness(t)

	code := h.run("--nope")
	assert.Equal(t, ExitCodeUsage, code)
	assert.Contains(t, h.stderr.String(), "Error: unknown flag: --nope")
	assert.NotContains(t, h.stderr.String(), "level=FATAL")
}

func TestResetConfig(t *testing.T) {
	h := newHarness(t)
	store := settings.NewStore(settings.DefaultPath(), nil)
	store.Set("theme", "dark")
	require.NoError(t, store.Save())

	code := h.run("--reset-config")
	require.Equal(t, ExitCodeSuccess, code, h.stderr.String())
	assert.Empty(t, h.launches)
	assert.Contains(t, h.stderr.String(), "Resetting config: "+settings.DefaultPath())

	_, err := os.Stat(settings.DefaultPath())
	assert.True(t, os.IsNotExist(err))
}

func TestShowConfig(t *testing.T) {
	h := newHarness(t)
	h.writeRC(t, "labels: [cat]\n")

	code := h.run("--show-config", "--autosave")
	require.Equal(t, ExitCodeSuccess, code, h.stderr.String())
	assert.Empty(t, h.launches)
	assert.Contains(t, h.stdout.String(), "auto_save")
	assert.Contains(t, h.stdout.String(), "[cat]")
}

func TestLoggerLevelFlag(t *testing.T) {
	h := newHarness(t)
	code := h.run("--logger-level", "debug", "--labels", "a")
	require.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, h.stderr.String(), "level=DEBUG")

	quiet := newHarness(t)
	code = quiet.run("--logger-level", "error")
	require.Equal(t, ExitCodeSuccess, code)
	assert.NotContains(t, quiet.stderr.String(), "No config file found")
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"usage", &cli.UsageError{Reason: errors.New("bad")}, ExitCodeUsage},
		{"parse", &config.ParseError{Option: "labels", Source: config.InlineSource}, ExitCodeUsage},
		{"unknown key", &config.UnknownKeyError{Origin: "x", Keys: []string{"y"}}, ExitCodeUsage},
		{"validation", config.ValidationErrors{{Field: "labels", Message: "m"}}, ExitCodeError},
		{"wrapped parse", errors.Join(errors.New("ctx"), &config.ParseError{}), ExitCodeUsage},
		{"reported validation", &reportedError{err: config.ValidationErrors{{Field: "labels"}}}, ExitCodeError},
		{"reported unknown key", &reportedError{err: &config.UnknownKeyError{Keys: []string{"x"}}}, ExitCodeUsage},
		{"generic", errors.New("boom"), ExitCodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getExitCode(tt.err))
		})
	}
}

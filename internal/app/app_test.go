package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"labelpc/internal/cli"
	"labelpc/internal/config"
	"labelpc/internal/settings"
	"labelpc/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWindow struct {
	shown bool
	err   error
}

func (w *recordingWindow) Show(ctx context.Context) error {
	w.shown = true
	return w.err
}

type fixture struct {
	dir      string
	rcPath   string
	store    *settings.Store
	logs     *bytes.Buffer
	out      *bytes.Buffer
	launches []Launch
	window   *recordingWindow
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	return &fixture{
		dir:    dir,
		rcPath: filepath.Join(dir, ".labelpcrc"),
		store:  settings.NewStore(filepath.Join(dir, "settings", settings.DefaultFileName), logging.Discard()),
		logs:   &bytes.Buffer{},
		out:    &bytes.Buffer{},
		window: &recordingWindow{},
	}
}

func (f *fixture) app() *Application {
	logger := logging.New(logging.LevelDebug, f.logs)
	return New(logger, config.NewResolver(f.rcPath, logger),
		WithSettings(f.store),
		WithOutput(f.out),
		WithWindowFactory(func(l Launch) (Window, error) {
			f.launches = append(f.launches, l)
			return f.window, nil
		}),
	)
}

func (f *fixture) writeRC(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(f.rcPath, []byte(content), 0644))
}

func TestRun_DefaultsWhenNothingGiven(t *testing.T) {
	f := newFixture(t)

	err := f.app().Run(context.Background(), &cli.Invocation{ConfigSource: f.rcPath, Overrides: config.Overrides{}})
	require.NoError(t, err)

	require.Len(t, f.launches, 1)
	assert.True(t, f.window.shown)
	l := f.launches[0]
	assert.Equal(t, cli.OutputNone, l.Output.Kind)
	assert.Empty(t, l.Filename)
	assert.True(t, l.Config.StoreData())
	assert.Equal(t, config.DefaultEpsilon, l.Config.Epsilon())
	assert.Contains(t, f.logs.String(), "No config file found at "+f.rcPath)
}

func TestRun_Precedence(t *testing.T) {
	f := newFixture(t)
	f.writeRC(t, "auto_save: true\nlabels: [a, b]\nkeep_prev: true\n")

	output := "out.json"
	inv := &cli.Invocation{
		Filename:     "img.png",
		Output:       &output,
		ConfigSource: f.rcPath,
		Overrides: config.Overrides{
			config.KeyLabels:   "x,y",
			config.KeyKeepPrev: false,
		},
	}
	require.NoError(t, f.app().Run(context.Background(), inv))

	require.Len(t, f.launches, 1)
	l := f.launches[0]
	assert.Equal(t, "img.png", l.Filename)
	assert.Equal(t, cli.OutputTarget{Kind: cli.OutputFile, Path: "out.json"}, l.Output)
	assert.Equal(t, []string{"x", "y"}, l.Config.Labels())
	assert.True(t, l.Config.AutoSave())
	assert.False(t, l.Config.KeepPrev())
	assert.Equal(t, config.SourceCLI, l.Config.Source(config.KeyLabels))
	assert.Equal(t, config.SourceFile, l.Config.Source(config.KeyAutoSave))
	assert.Equal(t, config.SourceDefault, l.Config.Source(config.KeyStoreData))
}

func TestRun_ValidateLabelWithoutLabels(t *testing.T) {
	f := newFixture(t)

	inv := &cli.Invocation{
		ConfigSource: f.rcPath,
		Overrides:    config.Overrides{config.KeyValidateLabel: config.ValidateLabelExact},
	}
	err := f.app().Run(context.Background(), inv)
	require.Error(t, err)

	var verrs config.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.HasField(config.KeyLabels))
	assert.Contains(t, err.Error(), config.MissingLabelsMessage)

	assert.Empty(t, f.launches)
	assert.False(t, f.window.shown)
}

func TestRun_ValidateLabelFromFile(t *testing.T) {
	f := newFixture(t)
	f.writeRC(t, "validate_label: exact\n")

	err := f.app().Run(context.Background(), &cli.Invocation{ConfigSource: f.rcPath, Overrides: config.Overrides{}})
	require.Error(t, err)
	assert.Empty(t, f.launches)

	// Labels from the command line satisfy the file's validate_label.
	f2 := newFixture(t)
	f2.writeRC(t, "validate_label: exact\n")
	err = f2.app().Run(context.Background(), &cli.Invocation{
		ConfigSource: f2.rcPath,
		Overrides:    config.Overrides{config.KeyLabels: "cat"},
	})
	require.NoError(t, err)
	require.Len(t, f2.launches, 1)
	assert.Equal(t, config.ValidateLabelExact, f2.launches[0].Config.ValidateLabel())
}

func TestRun_ParseErrorStopsLaunch(t *testing.T) {
	f := newFixture(t)

	err := f.app().Run(context.Background(), &cli.Invocation{
		ConfigSource: f.rcPath,
		Overrides:    config.Overrides{config.KeyLabelFlags: "{a: [b"},
	})

	var parseErr *config.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Empty(t, f.launches)
}

func TestRun_UnknownKeyStopsLaunch(t *testing.T) {
	f := newFixture(t)
	f.writeRC(t, "auto_sav: true\n")

	err := f.app().Run(context.Background(), &cli.Invocation{ConfigSource: f.rcPath, Overrides: config.Overrides{}})

	var unknown *config.UnknownKeyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"auto_sav"}, unknown.Keys)
	assert.Empty(t, f.launches)
}

func TestRun_InlineConfigSource(t *testing.T) {
	f := newFixture(t)

	err := f.app().Run(context.Background(), &cli.Invocation{
		ConfigSource: "{labels: [cat, dog], sort_labels: false}",
		Overrides:    config.Overrides{},
	})
	require.NoError(t, err)
	require.Len(t, f.launches, 1)
	assert.Equal(t, []string{"cat", "dog"}, f.launches[0].Config.Labels())
	assert.False(t, f.launches[0].Config.SortLabels())
}

func TestRun_ResetConfig(t *testing.T) {
	f := newFixture(t)
	f.store.Set("theme", "dark")
	require.NoError(t, f.store.Save())

	err := f.app().Run(context.Background(), &cli.Invocation{
		ConfigSource: f.rcPath,
		ResetConfig:  true,
		Overrides:    config.Overrides{},
	})
	require.NoError(t, err)

	_, statErr := os.Stat(f.store.Path())
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, f.launches)
	assert.Contains(t, f.logs.String(), "Resetting config: "+f.store.Path())
}

func TestRun_ShowConfig(t *testing.T) {
	f := newFixture(t)
	f.writeRC(t, "labels: [cat]\ncanvas:\n  num_backups: 3\n")

	output := "annotations/"
	err := f.app().Run(context.Background(), &cli.Invocation{
		Filename:     "img.png",
		Output:       &output,
		ConfigSource: f.rcPath,
		ShowConfig:   true,
		Overrides:    config.Overrides{config.KeyAutoSave: true},
	})
	require.NoError(t, err)
	assert.Empty(t, f.launches)

	report := f.out.String()
	assert.Contains(t, report, "canvas.num_backups")
	assert.Contains(t, report, "[cat]")
	assert.Contains(t, report, "OutputDir(annotations/)")
	assert.Contains(t, report, "img.png")
	assert.Contains(t, report, string(config.SourceCLI))
}

func TestRun_WindowFactoryError(t *testing.T) {
	f := newFixture(t)
	logger := logging.Discard()
	application := New(logger, config.NewResolver(f.rcPath, logger),
		WithSettings(f.store),
		WithWindowFactory(func(Launch) (Window, error) {
			return nil, errors.New("no display")
		}),
	)

	err := application.Run(context.Background(), &cli.Invocation{ConfigSource: f.rcPath, Overrides: config.Overrides{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create window: no display")
}

func TestHeadlessWindow(t *testing.T) {
	f := newFixture(t)
	logger := logging.New(logging.LevelInfo, f.logs)
	application := New(logger, config.NewResolver(f.rcPath, logger), WithSettings(f.store))

	output := "out"
	err := application.Run(context.Background(), &cli.Invocation{
		Filename:     "/images/a.png",
		Output:       &output,
		ConfigSource: f.rcPath,
		Overrides:    config.Overrides{},
	})
	require.NoError(t, err)
	assert.Contains(t, f.logs.String(), "Opening /images/a.png (output OutputDir(out))")

	reloaded := settings.NewStore(f.store.Path(), logging.Discard())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, []string{"/images/a.png"}, reloaded.RecentFiles())
}

func TestHeadlessWindow_CancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	window, err := NewHeadlessWindow(Launch{Logger: logging.Discard(), Settings: f.store})
	require.NoError(t, err)
	assert.ErrorIs(t, window.Show(ctx), context.Canceled)
}

func TestHeadlessWindow_NoFileReportsLastDirectory(t *testing.T) {
	f := newFixture(t)
	f.store.AddRecentFile("/images/a.png")
	require.NoError(t, f.store.Save())

	logger := logging.New(logging.LevelInfo, f.logs)
	application := New(logger, config.NewResolver(f.rcPath, logger), WithSettings(f.store))

	err := application.Run(context.Background(), &cli.Invocation{ConfigSource: f.rcPath, Overrides: config.Overrides{}})
	require.NoError(t, err)
	assert.Contains(t, f.logs.String(), "Opening no file")
	assert.Contains(t, f.logs.String(), "Last opened directory: /images")

	reloaded := settings.NewStore(f.store.Path(), logging.Discard())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, []string{"/images/a.png"}, reloaded.RecentFiles())
}

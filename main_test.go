package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpx_overlay_image/internal/config"
	"gpx_overlay_image/internal/errs"
)

func TestParseArguments(t *testing.T) {
	t.Run("short flags", func(t *testing.T) {
		args, err := parseArguments([]string{"-g", "ride.gpx", "-i", "photo.jpg", "-o", "out.png", "-a", "@me"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, "ride.gpx", args.GpxFile)
		assert.Equal(t, "photo.jpg", args.ImageFile)
		assert.Equal(t, "out.png", args.OutputFile)
		assert.Equal(t, "@me", args.Athlete)
		assert.False(t, args.Debug)
	})

	t.Run("long flags", func(t *testing.T) {
		args, err := parseArguments([]string{"--gpx", "ride.gpx", "--image=photo.gif", "--athlete", "x", "--debug", "--log-format", "json"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, "ride.gpx", args.GpxFile)
		assert.Equal(t, "photo.gif", args.ImageFile)
		assert.Equal(t, "", args.OutputFile)
		assert.Equal(t, "json", args.LogFormat)
		assert.True(t, args.Debug)
	})

	t.Run("missing required", func(t *testing.T) {
		_, err := parseArguments([]string{"-g", "ride.gpx"}, io.Discard)
		assert.ErrorIs(t, err, errs.ErrInvalidArgument)

		_, err = parseArguments([]string{"-i", "photo.jpg"}, io.Discard)
		assert.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := parseArguments([]string{"-g", "a.gpx", "-i", "b.jpg", "--speed"}, io.Discard)
		assert.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("help", func(t *testing.T) {
		_, err := parseArguments([]string{"-h"}, io.Discard)
		assert.ErrorIs(t, err, flag.ErrHelp)
		assert.Equal(t, 0, exitCode(err))
	})
}

func TestApplyArguments(t *testing.T) {
	cfg := config.Config{Output: "out.jpg", Athlete: "from-config", JPEGQuality: 90}
	cfg.Log.Level = "info"

	got := applyArguments(cfg, &Arguments{OutputFile: "x.png", LogLevel: "debug"})
	assert.Equal(t, "x.png", got.Output)
	assert.Equal(t, "from-config", got.Athlete)
	assert.Equal(t, "debug", got.Log.Level)
	assert.Equal(t, 90, got.JPEGQuality)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 1, exitCode(errs.Malformed("bad")))
}

func TestRunReportsFailureOnce(t *testing.T) {
	t.Setenv("GPX_OVERLAY_CONFIG", "")
	missing := filepath.Join(t.TempDir(), "missing.gpx")

	var stderr bytes.Buffer
	err := run(context.Background(), []string{"-g", missing, "-i", "photo.jpg"}, &stderr)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrFileNotFound)
	assert.NotContains(t, stderr.String(), missing)

	printError(&stderr, err)
	assert.Equal(t, 1, strings.Count(stderr.String(), missing))
	assert.Equal(t, 1, exitCode(err))
}

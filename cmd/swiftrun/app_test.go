// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invowk/swift-run/internal/config"
	"github.com/invowk/swift-run/internal/script"
	"github.com/invowk/swift-run/pkg/fspath"
	"github.com/invowk/swift-run/pkg/platform"
	"github.com/invowk/swift-run/pkg/types"
)

func relBin(configuration, name string) string {
	return string(fspath.JoinStr(".build", configuration, name+platform.HostExecutableSuffix()))
}

func TestRun_SoleExecutableForwardsArguments(t *testing.T) {
	f := newCLIFixture(t, "server")

	require.NoError(t, f.run("--", "a", "b"))

	require.Len(t, f.runner.builds, 1)
	assert.Equal(t, []string{"build", "--product", "server", "-c", "debug", "--package-path", string(f.root)},
		f.runner.builds[0])

	assert.Equal(t, 1, f.exec.calls)
	assert.Equal(t, f.binPath("debug", "server"), f.exec.path)
	assert.Equal(t, []string{relBin("debug", "server"), "a", "b"}, f.exec.argv)
}

func TestRun_NamedExecutable(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantArgv []string
	}{
		{"no arguments", []string{"server"}, nil},
		{"arguments after name", []string{"server", "a", "--b"}, []string{"a", "--b"}},
		{"separator after name", []string{"server", "--", "--port", "80"}, []string{"--port", "80"}},
		{"flags before name", []string{"-c", "debug", "server", "x"}, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCLIFixture(t, "server", "client")

			require.NoError(t, f.run(tt.args...))

			assert.Equal(t, f.binPath("debug", "server"), f.exec.path)
			assert.Equal(t, append([]string{relBin("debug", "server")}, tt.wantArgv...), f.exec.argv)
		})
	}
}

func TestRun_DependencyExecutable(t *testing.T) {
	f := newCLIFixture(t, "server")

	require.NoError(t, f.run("helper"))
	assert.Equal(t, f.binPath("debug", "helper"), f.exec.path)
}

func TestRun_SkipBuild(t *testing.T) {
	f := newCLIFixture(t, "server")

	require.NoError(t, f.run("--skip-build", "server"))

	assert.Empty(t, f.runner.builds)
	assert.Equal(t, 1, f.exec.calls)
}

func TestRun_ConfigAndFlagPrecedence(t *testing.T) {
	f := newCLIFixture(t, "server")
	f.config.cfg.Build.Configuration = config.BuildConfigurationRelease
	f.config.cfg.Build.Skip = true

	require.NoError(t, f.run("server"))
	assert.Empty(t, f.runner.builds, "build.skip from config")
	assert.Equal(t, f.binPath("release", "server"), f.exec.path)

	require.NoError(t, f.run("-c", "debug", "server"))
	assert.Equal(t, f.binPath("debug", "server"), f.exec.path, "flag overrides config")
}

func TestRun_ExplicitConfigFile(t *testing.T) {
	f := newCLIFixture(t, "server")

	require.NoError(t, f.run("--config", "/etc/swift-run.cue", "server"))
	require.Len(t, f.config.loaded, 1)
	assert.Equal(t, "/etc/swift-run.cue", f.config.loaded[0].ConfigFilePath)
}

func TestRun_ResolutionFailures(t *testing.T) {
	tests := []struct {
		name        string
		executables []string
		args        []string
		wantStderr  []string
	}{
		{
			name:       "no executable",
			args:       nil,
			wantStderr: []string{"Error:", "no executable product available", "No executable product found"},
		},
		{
			name:        "unknown name",
			executables: []string{"server"},
			args:        []string{"nope"},
			wantStderr:  []string{"no executable product named 'nope'", "Executable not found"},
		},
		{
			name:        "ambiguous",
			executables: []string{"server", "client"},
			args:        nil,
			wantStderr:  []string{"'server', 'client'", "Multiple executable products"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCLIFixture(t, tt.executables...)

			err := f.run(tt.args...)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, types.ExitFailure, exitErr.Code)
			for _, want := range tt.wantStderr {
				assert.Contains(t, f.stderr.String(), want)
			}
			assert.Empty(t, f.runner.builds)
			assert.Zero(t, f.exec.calls)
		})
	}
}

func TestRun_BuildFailureStopsLaunch(t *testing.T) {
	f := newCLIFixture(t, "server")
	f.runner.buildErr = errors.New("error: missing module 'Vapor'")

	err := f.run("server")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, types.ExitFailure, exitErr.Code)
	assert.ErrorIs(t, err, f.runner.buildErr)
	assert.Contains(t, f.stderr.String(), "error: missing module 'Vapor'")
	assert.Zero(t, f.exec.calls)
}

func TestRun_MissingBinaryIsLaunchFailure(t *testing.T) {
	f := newCLIFixture(t, "server")
	delete(f.files.files, f.binPath("debug", "server"))

	err := f.run("--skip-build", "server")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, f.stderr.String(), "Could not launch")
	assert.Zero(t, f.exec.calls)
}

func TestRun_LegacyScript(t *testing.T) {
	f := newCLIFixture(t, "server")
	driver := fspath.JoinStr(f.root, "toolchain", "swift")
	f.files.files[driver] = true
	f.files.files[fspath.JoinStr(f.root, "hello.swift")] = true

	require.NoError(t, f.run("--swift-path", string(fspath.JoinStr("toolchain", "swift")), "hello.swift", "x"))

	assert.Zero(t, f.runner.queries, "no package graph for scripts")
	assert.Empty(t, f.runner.builds)
	assert.Equal(t, driver, f.exec.path)
	assert.Equal(t, []string{string(fspath.JoinStr("toolchain", "swift")), "hello.swift", "x"}, f.exec.argv)
	assert.Contains(t, f.stderr.String(), script.DeprecationMessage("hello.swift"))
}

func TestRun_MissingScriptIsProductName(t *testing.T) {
	f := newCLIFixture(t, "server")

	err := f.run("missing.swift")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, f.stderr.String(), "no executable product named 'missing.swift'")
}

func TestRun_ConfigFailures(t *testing.T) {
	t.Run("explicit config file fails the run", func(t *testing.T) {
		f := newCLIFixture(t, "server")
		f.config.err = errors.New("config file not found")

		err := f.run("--config", "/nope.cue", "server")

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, f.stderr.String(), "config file not found")
		assert.Contains(t, f.stderr.String(), "Failed to load configuration")
		assert.Zero(t, f.exec.calls)
	})

	t.Run("default config file falls back to defaults", func(t *testing.T) {
		f := newCLIFixture(t, "server")
		f.config.err = errors.New("broken config")

		require.NoError(t, f.run("server"))
		assert.Contains(t, f.stderr.String(), "Warning:")
		assert.Equal(t, f.binPath("debug", "server"), f.exec.path)
	})

	t.Run("invalid configuration flag", func(t *testing.T) {
		f := newCLIFixture(t, "server")

		err := f.run("-c", "fast", "server")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"fast"`)
		assert.Zero(t, f.exec.calls)
	})
}

func TestRun_GenerateCompletionScript(t *testing.T) {
	f := newCLIFixture(t, "server")

	require.NoError(t, f.run("--generate-completion-script", "bash"))
	assert.Contains(t, f.stdout.String(), "swift-run")
	assert.Zero(t, f.exec.calls)

	err := f.run("--generate-completion-script", "tcsh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell")
}

func TestResolveSettings(t *testing.T) {
	t.Parallel()

	orig := types.FilesystemPath(t.TempDir())

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		got, err := resolveSettings(config.DefaultConfig(), &rootOptions{}, orig)
		require.NoError(t, err)
		assert.Equal(t, Settings{
			PackagePath:   orig,
			Configuration: config.BuildConfigurationDebug,
			ColorScheme:   config.ColorSchemeAuto,
		}, got)
	})

	t.Run("relative paths are anchored at the original directory", func(t *testing.T) {
		t.Parallel()

		got, err := resolveSettings(config.DefaultConfig(), &rootOptions{
			packagePath: "pkg",
			scratchPath: "out",
			swiftPath:   "bin/swift",
		}, orig)
		require.NoError(t, err)
		assert.Equal(t, fspath.JoinStr(orig, "pkg"), got.PackagePath)
		assert.Equal(t, fspath.JoinStr(orig, "out"), got.ScratchPath)
		assert.Equal(t, fspath.JoinStr(orig, "bin", "swift"), got.SwiftPath)
	})

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Build.Configuration = config.BuildConfigurationRelease
		cfg.Build.ScratchPath = config.ScratchDirPath(fspath.JoinStr(orig, "cfg-scratch"))

		got, err := resolveSettings(cfg, &rootOptions{
			configuration: config.BuildConfigurationDebug,
			skipBuild:     true,
			verbose:       true,
		}, orig)
		require.NoError(t, err)
		assert.Equal(t, config.BuildConfigurationDebug, got.Configuration)
		assert.Equal(t, fspath.JoinStr(orig, "cfg-scratch"), got.ScratchPath)
		assert.True(t, got.SkipBuild)
		assert.True(t, got.Verbose)
	})

	t.Run("invalid merged config", func(t *testing.T) {
		t.Parallel()

		_, err := resolveSettings(config.DefaultConfig(), &rootOptions{swiftPath: "   "}, orig)
		require.ErrorIs(t, err, config.ErrInvalidBinaryFilePath)
	})
}

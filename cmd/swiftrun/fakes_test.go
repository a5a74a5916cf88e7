// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/invowk/swift-run/internal/config"
	"github.com/invowk/swift-run/pkg/fspath"
	"github.com/invowk/swift-run/pkg/platform"
	"github.com/invowk/swift-run/pkg/types"
)

type (
	fakeConfig struct {
		cfg    *config.Config
		err    error
		loaded []config.LoadOptions
	}

	fakeFS struct {
		wd    types.FilesystemPath
		files map[types.FilesystemPath]bool
	}

	fakeExecutor struct {
		calls int
		path  types.FilesystemPath
		argv  []string
	}

	fakeRunner struct {
		mu       sync.Mutex
		outputs  map[string]string
		buildErr error
		builds   [][]string
		queries  int
	}

	// cliFixture is a package rooted at a temp dir whose products are
	// served by a fake driver.
	cliFixture struct {
		root   types.FilesystemPath
		config *fakeConfig
		files  *fakeFS
		exec   *fakeExecutor
		runner *fakeRunner
		stdout *bytes.Buffer
		stderr *bytes.Buffer
		app    *App
	}
)

func (c *fakeConfig) Load(_ context.Context, opts config.LoadOptions) (*config.Config, error) {
	c.loaded = append(c.loaded, opts)
	if c.err != nil {
		return nil, c.err
	}
	cfg := *c.cfg
	return &cfg, nil
}

func (f *fakeFS) Getwd() (types.FilesystemPath, error) { return f.wd, nil }

func (f *fakeFS) Chdir(dir types.FilesystemPath) error {
	f.wd = dir
	return nil
}

func (f *fakeFS) IsRegularFile(path types.FilesystemPath) bool { return f.files[path] }

func (e *fakeExecutor) Exec(path types.FilesystemPath, argv, _ []string) error {
	e.calls++
	e.path = path
	e.argv = argv
	return nil
}

func (r *fakeRunner) Output(_ context.Context, _ types.FilesystemPath, args ...string) ([]byte, error) {
	r.mu.Lock()
	r.queries++
	r.mu.Unlock()

	key := strings.Join(args, " ")
	out, ok := r.outputs[key]
	if !ok {
		return nil, fmt.Errorf("unexpected command: %s", key)
	}
	return []byte(out), nil
}

func (r *fakeRunner) Run(_ context.Context, _ types.FilesystemPath, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds = append(r.builds, args)
	return r.buildErr
}

// newCLIFixture creates a root package declaring executables, plus a
// dependency declaring "helper".
func newCLIFixture(t *testing.T, executables ...string) *cliFixture {
	t.Helper()

	root := types.FilesystemPath(t.TempDir())
	dep := fspath.JoinStr(root, ".build", "checkouts", "helper")

	products := make([]string, 0, len(executables)+1)
	for _, name := range executables {
		products = append(products, fmt.Sprintf(`{"name": %q, "type": {"executable": null}}`, name))
	}
	products = append(products, `{"name": "AppKit", "type": {"library": ["automatic"]}}`)

	runner := &fakeRunner{outputs: map[string]string{
		"package show-dependencies --format json --package-path " + string(root): fmt.Sprintf(
			`{"identity": "app", "name": "app", "path": %q, "dependencies": [
			  {"identity": "helper", "name": "helper", "path": %q, "dependencies": []}
			]}`, root, dep),
		"package describe --type json --package-path " + string(root): `{"name": "app", "products": [` +
			strings.Join(products, ",") + `]}`,
		"package describe --type json --package-path " + string(dep): `{"name": "helper", "products": [
			{"name": "helper", "type": {"executable": null}}
		]}`,
	}}

	f := &cliFixture{
		root:   root,
		config: &fakeConfig{cfg: config.DefaultConfig()},
		files:  &fakeFS{wd: root, files: map[types.FilesystemPath]bool{}},
		exec:   &fakeExecutor{},
		runner: runner,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	for _, name := range append(executables, "helper") {
		for _, cfg := range []string{"debug", "release"} {
			f.files.files[f.binPath(cfg, name)] = true
		}
	}

	app, err := NewApp(Dependencies{
		Config:   f.config,
		Files:    f.files,
		Executor: f.exec,
		Runner:   f.runner,
		Stdout:   f.stdout,
		Stderr:   f.stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	f.app = app

	// The root command installs its logger as the slog default.
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	return f
}

func (f *cliFixture) binPath(configuration, name string) types.FilesystemPath {
	return fspath.JoinStr(f.root, ".build", configuration, name+platform.HostExecutableSuffix())
}

func (f *cliFixture) run(args ...string) error {
	cmd := NewRootCommand(f.app)
	cmd.SetArgs(args)
	cmd.SetOut(f.stdout)
	cmd.SetErr(f.stderr)
	return cmd.ExecuteContext(context.Background())
}

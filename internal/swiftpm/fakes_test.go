// SPDX-License-Identifier: MPL-2.0

package swiftpm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/invowk/swift-run/pkg/types"
)

type (
	// fakeRunner answers driver invocations from canned outputs keyed by
	// the space-joined argument list.
	fakeRunner struct {
		mu      sync.Mutex
		outputs map[string]string
		errs    map[string]error
		runErr  error
		calls   []fakeCall
	}

	fakeCall struct {
		dir  types.FilesystemPath
		args []string
	}

	fakeFS struct {
		files map[types.FilesystemPath]bool
	}
)

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeRunner) Output(_ context.Context, dir types.FilesystemPath, args ...string) ([]byte, error) {
	f.record(dir, args)
	key := strings.Join(args, " ")
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	out, ok := f.outputs[key]
	if !ok {
		return nil, fmt.Errorf("unexpected command: %s", key)
	}
	return []byte(out), nil
}

func (f *fakeRunner) Run(_ context.Context, dir types.FilesystemPath, args ...string) error {
	f.record(dir, args)
	return f.runErr
}

func (f *fakeRunner) record(dir types.FilesystemPath, args []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{dir: dir, args: append([]string(nil), args...)})
}

func (f *fakeRunner) setDependencies(root types.FilesystemPath, json string) {
	f.outputs[showDependenciesKey(root)] = json
}

func (f *fakeRunner) setDescription(path types.FilesystemPath, json string) {
	f.outputs[describeKey(path)] = json
}

func showDependenciesKey(root types.FilesystemPath) string {
	return "package show-dependencies --format json --package-path " + string(root)
}

func describeKey(path types.FilesystemPath) string {
	return "package describe --type json --package-path " + string(path)
}

func (f *fakeFS) Getwd() (types.FilesystemPath, error) { return "/", nil }

func (f *fakeFS) Chdir(types.FilesystemPath) error { return nil }

func (f *fakeFS) IsRegularFile(path types.FilesystemPath) bool { return f.files[path] }

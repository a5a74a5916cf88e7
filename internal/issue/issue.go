// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	NoExecutableFoundId Id = iota + 1
	ExecutableNotFoundId
	MultipleExecutablesId
	BuildFailedId
	LaunchFailedId
	ToolchainNotFoundId
	PackageLoadFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation for this issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown. stylePath is a glamour
// standard style ("auto", "dark", "light", "notty") or a style file path.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

const swiftpmRunDocs HttpLink = "https://docs.swift.org/swiftpm/documentation/packagemanagerdocs/swiftrun"

var (
	render = glamour.Render

	noExecutableFoundIssue = &Issue{
		id: NoExecutableFoundId,
		mdMsg: `
# No executable product found!

The package has no executable product that can be run.

## Things you can try:
- Declare one in ` + "`Package.swift`" + `:
~~~swift
products: [
    .executable(name: "server", targets: ["Server"]),
]
~~~
- Make sure you are in the right directory, or pass ` + "`--package-path`",
		docLinks: []HttpLink{swiftpmRunDocs},
	}

	executableNotFoundIssue = &Issue{
		id: ExecutableNotFoundId,
		mdMsg: `
# Executable not found!

No executable product with the requested name exists in the package or
any of its dependencies.

## Things you can try:
- Check the spelling; names are case-sensitive
- List the products the package declares:
~~~
$ swift package describe
~~~
- Run ` + "`swift-run`" + ` without a name if the package has a single executable`,
	}

	multipleExecutablesIssue = &Issue{
		id: MultipleExecutablesId,
		mdMsg: `
# Multiple executable products!

The package declares more than one executable, so swift-run cannot pick one.

## Things you can try:
- Name the executable to run:
~~~
$ swift run <executable> [arguments...]
~~~
- To pass arguments without a name, first make the package declare a
  single executable`,
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# Build failed!

The product could not be built, so nothing was launched. The compiler
output above describes the problem.

## Things you can try:
- Fix the reported errors and run again
- Build separately to see the full output:
~~~
$ swift build --product <executable>
~~~
- Use ` + "`--skip-build`" + ` to run the last successful build`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Could not launch the executable!

The build artifact is missing or could not be executed.

## Things you can try:
- Build the product before using ` + "`--skip-build`" + `
- Check that ` + "`--configuration`" + ` and ` + "`--scratch-path`" + ` match the build
- Verify the artifact is executable:
~~~
$ ls -l .build/debug/
~~~`,
	}

	toolchainNotFoundIssue = &Issue{
		id: ToolchainNotFoundId,
		mdMsg: `
# Swift toolchain not found!

swift-run needs the ` + "`swift`" + ` driver to load and build packages.

## Things you can try:
- Install a Swift toolchain and make sure ` + "`swift`" + ` is on your PATH
- Point swift-run at a specific driver:
~~~
$ swift-run --swift-path /path/to/usr/bin/swift
~~~
- Or set ` + "`swift_path`" + ` in your config file`,
		extLinks: []HttpLink{"https://www.swift.org/install/"},
	}

	packageLoadFailedIssue = &Issue{
		id: PackageLoadFailedId,
		mdMsg: `
# Failed to load the package!

The package manifest or its dependency graph could not be loaded.

## Things you can try:
- Run swift-run from a directory containing ` + "`Package.swift`" + `, or pass ` + "`--package-path`" + `
- Resolve dependencies and check the manifest:
~~~
$ swift package resolve
$ swift package describe
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file or a SWIFT_RUN_* environment variable is invalid.

## Things you can try:
- Check the CUE syntax of your config file
- Accepted fields:
~~~cue
swift_path: "/usr/bin/swift"
build: {
	configuration: "debug" | "release"
	scratch_path:  ".build"
	skip:          false
}
ui: {
	color_scheme: "auto" | "dark" | "light"
	verbose:      false
}
~~~`,
	}

	issues = map[Id]*Issue{
		noExecutableFoundIssue.Id():   noExecutableFoundIssue,
		executableNotFoundIssue.Id():  executableNotFoundIssue,
		multipleExecutablesIssue.Id(): multipleExecutablesIssue,
		buildFailedIssue.Id():         buildFailedIssue,
		launchFailedIssue.Id():        launchFailedIssue,
		toolchainNotFoundIssue.Id():   toolchainNotFoundIssue,
		packageLoadFailedIssue.Id():   packageLoadFailedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}

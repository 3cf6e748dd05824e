// Package version holds the release of the module, shown by the CLI.
package version

const Version = "0.1.0"

// VersionString is printed by 'webgrid --version'.
var VersionString = "webgrid " + Version

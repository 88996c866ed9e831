// Package version carries the release version shared by all TickerScope commands.
package version

// Version is the current release, printed by -v/--version.
const Version = "1.2.0"

// Package paths provides cross-platform path resolution for globcheck's own
// files.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux and macOS, paths follow XDG conventions
// (~/.config), so the configuration file lives at:
//
//	paths.ConfigDir("globcheck") // ~/.config/globcheck
//
// # Home Expansion
//
// Paths given on the command line may start with "~":
//
//	p, err := paths.ExpandHome("~/globcheck.yaml")
package paths

// Package assets ships the default character and script definitions so
// the server runs out of the box without any asset directories on disk.
package assets

import "embed"

//go:embed characters scripts
var FS embed.FS

// Subdirectory names inside FS.
const (
	CharactersDir = "characters"
	ScriptsDir    = "scripts"
)

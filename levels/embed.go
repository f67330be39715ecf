package levels

import "embed"

// LevelsFS holds the levels shipped with the game.
//
//go:embed *.json
var LevelsFS embed.FS

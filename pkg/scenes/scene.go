package scenes

import (
	"github.com/gonewx/bowling/pkg/game"
)

// Scene is a type alias for game.Scene. All scene implementations
// in this package satisfy the game.Scene interface.
type Scene = game.Scene

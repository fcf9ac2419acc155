// puzzled - interactive and batch simulator for face-turning twisty puzzles.
package main

import (
	"github.com/SeamusWaldron/puzzled/internal/cli"
)

func main() {
	cli.Execute()
}

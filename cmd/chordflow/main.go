// Command chordflow renders particle chord diagrams in the terminal, a desktop window or SVG
package main

import (
	"github.com/lixenwraith/chordflow/core"
)

func main() {
	// Panic Recovery: crash hooks restore the terminal before the report is printed
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	Execute()
}

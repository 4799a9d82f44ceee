// Command kenbak-panel runs the ebiten front-panel GUI host against a
// kenbak.Machine, optionally pre-loading a program.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mkessler/kenbak1/internal/loader"
	"github.com/mkessler/kenbak1/panel"
)

var programPath = flag.String("program", "", "Path to a raw KENBAK-1 memory image to preload")
var org = flag.Uint("org", 4, "Origin address to load the program at")

func main() {
	flag.Parse()

	p := panel.New()

	if *programPath != "" {
		if err := loader.Load(p.Machine(), *programPath, uint8(*org)); err != nil {
			log.Fatalf("Couldn't load program: %v", err)
		}
	}

	if err := ebiten.RunGame(p); err != nil {
		log.Fatal(err)
	}
}

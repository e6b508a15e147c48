/*
Forward+ renderer testbed: a depth prepass, compute-based tiled light
culling, PBR shading with image-based ambient light and a tone-mapping
post-process, driven by the engine package.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bitzhuwei/OpenGL-Renderer/engine"
	"github.com/bitzhuwei/OpenGL-Renderer/testbed"
)

func main() {
	tb, err := testbed.NewTestGame()
	if err != nil {
		panic(err)
	}

	e, err := engine.New(tb.Game)
	if err != nil {
		panic(err)
	}

	if err := e.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		<-sigCh
		_ = e.Shutdown()
	}()

	// run engine
	if err := e.Run(); err != nil {
		panic(err)
	}

	_ = e.Shutdown()
}

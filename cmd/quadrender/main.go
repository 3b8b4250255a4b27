package main

import (
	"errors"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/graphicsprogramming/quadrender/lib/config"
	qlog "github.com/graphicsprogramming/quadrender/lib/log"
	"github.com/graphicsprogramming/quadrender/lib/renderer"
	"github.com/graphicsprogramming/quadrender/lib/rendering/shaders"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) > 2 {
		log.Fatalf("Usage: %s [config file]", os.Args[0])
	}

	cfg := config.Default()
	if len(os.Args) == 2 {
		var err error
		cfg, err = config.Parse(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
	}

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(qlog.NewHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	r, err := renderer.New(cfg)
	if errors.Is(err, shaders.ErrResourceUnavailable) {
		log.Fatalf("shader resource missing, not starting: %s", err)
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := r.Run(); err != nil {
		log.Fatal(err)
	}
}

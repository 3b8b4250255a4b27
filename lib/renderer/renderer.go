package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/graphicsprogramming/quadrender/lib/api"
	"github.com/graphicsprogramming/quadrender/lib/config"
	"github.com/graphicsprogramming/quadrender/lib/metrics"
	"github.com/graphicsprogramming/quadrender/lib/rendering"
	"github.com/graphicsprogramming/quadrender/lib/rendering/shaders"
	"github.com/graphicsprogramming/quadrender/lib/stats"
	"github.com/graphicsprogramming/quadrender/lib/utils"
	"github.com/graphicsprogramming/quadrender/lib/window"
)

// Renderer owns everything the render loop touches. Only RequestShutdown,
// ShaderSource and Stats may be called from other goroutines.
type Renderer struct {
	cfg    *config.Config
	source shaders.Source
	stats  *stats.Stats

	shutdownRequested atomic.Bool
}

// New loads the shader resource. It does no GPU work, so a missing
// resource fails before any window exists.
func New(cfg *config.Config) (*Renderer, error) {
	src, err := LoadSource(cfg)
	if err != nil {
		return nil, err
	}
	return &Renderer{cfg: cfg, source: src, stats: stats.New()}, nil
}

// LoadSource reads the configured shader resource, or the built-in one
// when none is configured.
func LoadSource(cfg *config.Config) (shaders.Source, error) {
	if cfg.Shader.Path == "" {
		return shaders.Default(), nil
	}
	src, err := shaders.ParseFile(string(cfg.Shader.Path))
	if err != nil {
		return shaders.Source{}, fmt.Errorf("could not load shader: %w", err)
	}
	return src, nil
}

func (r *Renderer) RequestShutdown() {
	r.shutdownRequested.Store(true)
}

func (r *Renderer) ShaderSource() shaders.Source {
	return r.source
}

func (r *Renderer) Stats() *stats.Stats {
	return r.stats
}

// Run creates the window and GL resources on the calling thread and draws
// until the window closes or shutdown is requested. The caller must have
// locked the goroutine to its OS thread.
func (r *Renderer) Run() error {
	r.log("VERTEX\n%s", r.source.Vertex)
	r.log("FRAGMENT\n%s", r.source.Fragment)

	win, err := window.New(&r.cfg.Window)
	if err != nil {
		return fmt.Errorf("could not create window: %w", err)
	}
	defer win.Destroy()

	ctx, err := rendering.Init()
	if err != nil {
		return fmt.Errorf("could not initialise renderer: %w", err)
	}

	mesh, err := rendering.UploadQuad(ctx, rendering.DefaultQuad())
	if err != nil {
		return fmt.Errorf("could not upload quad: %w", err)
	}
	defer mesh.Delete()

	program, err := shaders.Build(ctx, r.source, r.cfg.ShaderPolicy())
	if err != nil {
		return fmt.Errorf("could not init GL program: %w", err)
	}
	defer func() {
		if err := program.Delete(); err != nil {
			slog.Error(fmt.Sprintf("could not delete program: %s", err), slog.String("module", "renderer"))
		}
	}()
	if err := program.Use(); err != nil {
		return fmt.Errorf("could not use GL program: %w", err)
	}
	r.stats.SetProgram(program.ID())

	theApi := api.ServeInBackground(r.cfg.Api, r)
	if theApi != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := theApi.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				slog.Warn(fmt.Sprintf("could not stop web server: %s", err), slog.String("module", "renderer"))
			}
		}()
	}

	bg := utils.ColourParse(r.cfg.ClearColour)
	ctx.ClearColor(bg.X(), bg.Y(), bg.Z(), bg.W())

	for !win.ShouldClose() && !r.shutdownRequested.Load() {
		ctx.Clear()
		mesh.Draw()

		win.SwapBuffers()
		win.Poll()

		metrics.FramesDrawn.Inc()
		r.stats.Update()
	}

	r.log("render loop finished after %d frames", r.stats.Snapshot().FramesDrawn)
	return nil
}

func (r *Renderer) log(msg string, args ...interface{}) {
	slog.Debug(fmt.Sprintf(msg, args...), slog.String("module", "renderer"))
}

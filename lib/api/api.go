// Package api serves a small HTTP interface next to the render loop. None
// of the handlers touch the GL context; they only read stats and the
// parsed shader source, and may ask the loop to stop.
//
//	@title		quadrender API
//	@version	1.0
//	@BasePath	/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/graphicsprogramming/quadrender/docs"
	"github.com/graphicsprogramming/quadrender/lib/config"
	"github.com/graphicsprogramming/quadrender/lib/metrics"
	"github.com/graphicsprogramming/quadrender/lib/rendering/shaders"
	"github.com/graphicsprogramming/quadrender/lib/stats"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate go tool swag init --dir ./,../rendering/shaders,../stats --generalInfo api.go --output ../../docs --outputTypes go

// Controller is the part of the renderer the API may see.
type Controller interface {
	RequestShutdown()
	ShaderSource() shaders.Source
	Stats() *stats.Stats
}

type Api struct {
	srv  http.Server
	mux  *http.ServeMux
	cfg  *config.ApiCfg
	ctrl Controller

	wsMutex   sync.Mutex
	wsClients map[*websocket.Conn]bool
}

func New(cfg *config.ApiCfg, ctrl Controller) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.ctrl = ctrl
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.wsClients = make(map[*websocket.Conn]bool)
	a.routes()
	return a
}

func (a *Api) routes() {
	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("POST /api/kill", a.suicide)
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/shader", a.getShader)
	a.mux.HandleFunc("GET /api/shader/{stage}", a.getShaderStage)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
	a.mux.Handle("/metrics", metrics.Handler())

	docs.SwaggerInfo.BasePath = "/"
	a.mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) Shutdown(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}

// @Summary	Record a 10 second CPU profile
// @Router		/prof [get]
// @Tags		debug
// @Produce	octet-stream
// @Success	200
func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// @Summary	Ask the render loop to close the window and exit
// @Router		/api/kill [post]
// @Tags		base
// @Success	200
func (a *Api) suicide(w http.ResponseWriter, _ *http.Request) {
	slog.Info("shutting down as per api request", slog.String("module", "api"))
	a.ctrl.RequestShutdown()
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		a.log("could not write response: %s", err)
		return
	}
}

// @Summary	Current render statistics
// @Router		/api/stats [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	stats.Snapshot
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.ctrl.Stats().Snapshot())
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode stats: %s", err), http.StatusInternalServerError)
		return
	}
}

func (a *Api) log(msg string, args ...interface{}) {
	slog.Warn(fmt.Sprintf(msg, args...), slog.String("module", "api"))
}

// ServeInBackground starts the API if it is configured and returns nil
// otherwise.
func ServeInBackground(cfg *config.ApiCfg, ctrl Controller) *Api {
	var theApi *Api
	if cfg != nil {
		theApi = New(cfg, ctrl)

		slog.Info(fmt.Sprintf("starting web server on %s", cfg.Bind), slog.String("module", "api"))
		go func() {
			err := theApi.Serve()
			if err != nil && err != http.ErrServerClosed {
				slog.Error(fmt.Sprintf("web server stopped: %s", err), slog.String("module", "api"))
			}
		}()
	}
	return theApi
}

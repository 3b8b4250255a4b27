package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesDrawn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quadrender_frames_drawn_total",
		Help: "Total number of frames drawn by the render loop",
	})
	ShaderCompileFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadrender_shader_compile_failures_total",
		Help: "Total number of shader stages that failed to compile",
	}, []string{"stage"})
	ProgramBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadrender_program_builds_total",
		Help: "Total number of shader program builds, by result",
	}, []string{"result"})
)

const (
	BuildOK          = "ok"
	BuildCompileFail = "compile_failed"
	BuildLinkFail    = "link_failed"
	BuildUnchecked   = "unchecked"
)

func init() {
	for _, stage := range []string{"vertex", "fragment"} {
		ShaderCompileFailures.WithLabelValues(stage).Add(0)
	}
	for _, result := range []string{BuildOK, BuildCompileFail, BuildLinkFail, BuildUnchecked} {
		ProgramBuilds.WithLabelValues(result).Add(0)
	}
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

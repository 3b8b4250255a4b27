package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/graphicsprogramming/quadrender/lib/rendering/shaders"
)

// @Summary	The shader source the running program was built from, split per stage
// @Router		/api/shader [get]
// @Tags		shader
// @Produce	json
// @Success	200	{object}	shaders.Source
func (a *Api) getShader(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(a.ctrl.ShaderSource())
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode shader source: %s", err), http.StatusInternalServerError)
		return
	}
}

// @Summary	The source text of a single shader stage
// @Router		/api/shader/{stage} [get]
// @Tags		shader
// @Param		stage	path	string	true	"vertex or fragment"
// @Produce	plain
// @Success	200	{string}	string
// @Failure	404	{string}	string	"Unknown stage"
func (a *Api) getShaderStage(w http.ResponseWriter, req *http.Request) {
	var stage shaders.Stage
	switch req.PathValue("stage") {
	case "vertex":
		stage = shaders.Vertex
	case "fragment":
		stage = shaders.Fragment
	default:
		http.Error(w, "Unknown stage, expected vertex or fragment", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := fmt.Fprint(w, a.ctrl.ShaderSource().Get(stage))
	if err != nil {
		a.log("could not write response: %s", err)
	}
}

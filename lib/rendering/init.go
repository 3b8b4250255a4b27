package rendering

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/graphicsprogramming/quadrender/lib/rendering/shaders"
)

// Context is the GL context current on the calling thread. It is the only
// way the rest of the program talks to the driver.
type Context struct {
	guard ThreadGuard
}

// Init loads the GL entry points for the context that is current on the
// calling thread and binds the returned Context to that thread.
func Init() (*Context, error) {
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("could not initialise OpenGL context: %w", err)
	}

	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))
	slog.Info(fmt.Sprintf("OpenGL version %s / %s / %s", vendor, renderer, version), slog.String("module", "rendering"))

	return &Context{guard: NewThreadGuard()}, nil
}

func (c *Context) CheckThread() error {
	return c.guard.Check()
}

func (c *Context) CreateShader(stage shaders.Stage) uint32 {
	if stage == shaders.Fragment {
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return gl.CreateShader(gl.VERTEX_SHADER)
}

func (c *Context) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
}

func (c *Context) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (c *Context) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	clog := make([]byte, logLength+1)
	gl.GetShaderInfoLog(shader, logLength, nil, &clog[0])
	return strings.TrimRight(string(clog), "\x00")
}

func (c *Context) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (c *Context) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (c *Context) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (c *Context) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (c *Context) ValidateProgram(program uint32) {
	gl.ValidateProgram(program)
}

func (c *Context) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	logmsg := make([]byte, logLength+1)
	gl.GetProgramInfoLog(program, logLength, nil, &logmsg[0])
	return strings.TrimRight(string(logmsg), "\x00")
}

func (c *Context) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (c *Context) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *Context) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

package shaders

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/graphicsprogramming/quadrender/lib/metrics"
)

var (
	// ErrWrongThread is returned when a Device is used from a thread other
	// than the one its GL context is current on.
	ErrWrongThread    = errors.New("graphics context used from a foreign thread")
	ErrProgramDeleted = errors.New("program already deleted")
)

// Device is the graphics context every shader call goes through. All
// methods must be called from the thread that owns the context.
type Device interface {
	CheckThread() error

	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ValidateProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
}

// Policy decides what Build does when a stage fails to compile.
type Policy int

const (
	// Strict refuses to create a program unless both stages compile and
	// the program links.
	Strict Policy = iota
	// Lenient always creates and links a program, reporting failures only
	// through the log.
	Lenient
)

func (p Policy) String() string {
	if p == Lenient {
		return "lenient"
	}
	return "strict"
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return Strict, fmt.Errorf("unknown shader policy %q", s)
	}
}

type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

// Program is a linked shader program. It must be deleted exactly once.
type Program struct {
	id      uint32
	dev     Device
	deleted bool
}

func (p *Program) ID() uint32 {
	return p.id
}

func (p *Program) Use() error {
	if p.deleted {
		return ErrProgramDeleted
	}
	if err := p.dev.CheckThread(); err != nil {
		return err
	}
	p.dev.UseProgram(p.id)
	return nil
}

func (p *Program) Delete() error {
	if p.deleted {
		return ErrProgramDeleted
	}
	if err := p.dev.CheckThread(); err != nil {
		return err
	}
	p.dev.DeleteProgram(p.id)
	p.deleted = true
	return nil
}

// Build compiles both stages of src and links them into a program. Both
// stages are always compiled so every diagnostic surfaces in one pass.
func Build(dev Device, src Source, policy Policy) (*Program, error) {
	if err := dev.CheckThread(); err != nil {
		return nil, err
	}
	logger := slog.With(slog.String("module", "shaders"))

	var errs []error
	var handles [2]uint32
	for _, stage := range []Stage{Vertex, Fragment} {
		shader, err := compileShader(dev, stage, src.Get(stage))
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to compile %s shader:\n%s", stage, err.Log), slog.String("stage", stage.String()))
			metrics.ShaderCompileFailures.WithLabelValues(stage.String()).Inc()
			errs = append(errs, err)
		}
		handles[stage] = shader
	}
	defer func() {
		for _, shader := range handles {
			if shader != 0 {
				dev.DeleteShader(shader)
			}
		}
	}()

	if len(errs) > 0 && policy == Strict {
		metrics.ProgramBuilds.WithLabelValues(metrics.BuildCompileFail).Inc()
		return nil, errors.Join(errs...)
	}

	program := dev.CreateProgram()
	for _, shader := range handles {
		if shader != 0 {
			dev.AttachShader(program, shader)
		}
	}
	dev.LinkProgram(program)
	dev.ValidateProgram(program)

	if policy == Lenient {
		metrics.ProgramBuilds.WithLabelValues(metrics.BuildUnchecked).Inc()
		logger.Debug(fmt.Sprintf("Built program %d without link check", program))
		return &Program{id: program, dev: dev}, nil
	}

	if !dev.ProgramLinked(program) {
		linkErr := &LinkError{Log: dev.ProgramInfoLog(program)}
		logger.Error(fmt.Sprintf("Failed to link program:\n%s", linkErr.Log))
		metrics.ProgramBuilds.WithLabelValues(metrics.BuildLinkFail).Inc()
		dev.DeleteProgram(program)
		return nil, linkErr
	}

	metrics.ProgramBuilds.WithLabelValues(metrics.BuildOK).Inc()
	logger.Debug(fmt.Sprintf("Built program %d", program))
	return &Program{id: program, dev: dev}, nil
}

// compileShader returns the shader handle, or 0 and the driver's
// diagnostics if compilation failed.
func compileShader(dev Device, stage Stage, source string) (uint32, *CompileError) {
	shader := dev.CreateShader(stage)
	dev.ShaderSource(shader, source)
	dev.CompileShader(shader)

	if !dev.ShaderCompiled(shader) {
		clog := dev.ShaderInfoLog(shader)
		dev.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: clog}
	}
	return shader, nil
}

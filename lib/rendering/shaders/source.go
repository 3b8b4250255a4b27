package shaders

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed res/Basic.shader
var basicShader string

// ErrResourceUnavailable is returned when the combined shader resource
// cannot be opened or read.
var ErrResourceUnavailable = errors.New("shader resource unavailable")

const markerTag = "#shader"

type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Source holds the text of both stages of a combined shader resource.
type Source struct {
	Vertex   string `json:"vertex"`
	Fragment string `json:"fragment"`
}

func (s Source) Get(stage Stage) string {
	if stage == Fragment {
		return s.Fragment
	}
	return s.Vertex
}

// Wrap renders the pair back into the combined format, one marker per stage.
func (s Source) Wrap() string {
	var b strings.Builder
	b.WriteString(markerTag + " vertex\n")
	b.WriteString(s.Vertex)
	b.WriteString(markerTag + " fragment\n")
	b.WriteString(s.Fragment)
	return b.String()
}

// marker reports which stage a marker line selects. Lines that are not
// markers return ok == false.
func marker(line string) (stage Stage, ok bool) {
	i := strings.Index(line, markerTag)
	if i < 0 {
		return 0, false
	}
	rest := line[i+len(markerTag):]
	if strings.Contains(rest, "vertex") {
		return Vertex, true
	}
	if strings.Contains(rest, "fragment") {
		return Fragment, true
	}
	return 0, false
}

// Split sorts lines into the vertex and fragment sections. Lines before the
// first marker are dropped.
func Split(lines []string) Source {
	var sections [2]strings.Builder
	current := -1

	for _, line := range lines {
		if stage, ok := marker(line); ok {
			current = int(stage)
			continue
		}
		if current < 0 {
			continue
		}
		sections[current].WriteString(line)
		sections[current].WriteByte('\n')
	}

	return Source{
		Vertex:   sections[Vertex].String(),
		Fragment: sections[Fragment].String(),
	}
}

// Parse reads a combined shader resource. Only the '\n' terminator is
// stripped from each line.
func Parse(r io.Reader) (Source, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, strings.TrimSuffix(line, "\n"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Source{}, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
		}
	}
	return Split(lines), nil
}

func ParseFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	src, err := Parse(f)
	if err != nil {
		return Source{}, fmt.Errorf("could not read %s: %w", path, err)
	}
	return src, nil
}

// Default returns the built-in shader used when no resource is configured.
func Default() Source {
	src, _ := Parse(strings.NewReader(basicShader))
	return src
}

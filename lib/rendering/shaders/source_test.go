package shaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitScenario(t *testing.T) {
	src := Split([]string{
		"#shader vertex",
		"void main(){}",
		"#shader fragment",
		"void main(){}",
	})

	if src.Vertex != "void main(){}\n" {
		t.Errorf("vertex = %q", src.Vertex)
	}
	if src.Fragment != "void main(){}\n" {
		t.Errorf("fragment = %q", src.Fragment)
	}
}

func TestSplitEmpty(t *testing.T) {
	src := Split(nil)
	if src.Vertex != "" || src.Fragment != "" {
		t.Errorf("expected two empty strings, got %+v", src)
	}
}

func TestSplitDropsLinesBeforeFirstMarker(t *testing.T) {
	src := Split([]string{
		"// preamble",
		"uniform float junk;",
		"#shader fragment",
		"out vec4 color;",
	})

	if src.Vertex != "" {
		t.Errorf("vertex should be empty, got %q", src.Vertex)
	}
	if src.Fragment != "out vec4 color;\n" {
		t.Errorf("fragment = %q", src.Fragment)
	}
	if strings.Contains(src.Vertex+src.Fragment, "preamble") {
		t.Error("preamble leaked into a section")
	}
}

func TestSplitWithoutAnyMarker(t *testing.T) {
	src := Split([]string{"void main(){}", "", "// nothing"})
	if src != (Source{}) {
		t.Errorf("expected empty pair, got %+v", src)
	}
}

func TestSplitKeepsOrderAndBlankLines(t *testing.T) {
	src := Split([]string{
		"#shader vertex",
		"#version 410 core",
		"",
		"void main()",
		"{",
		"    gl_Position = vec4(0.0);",
		"}",
		"#shader fragment",
		"#version 410 core",
		"out vec4 color;",
	})

	wantVertex := "#version 410 core\n\nvoid main()\n{\n    gl_Position = vec4(0.0);\n}\n"
	if src.Vertex != wantVertex {
		t.Errorf("vertex = %q, want %q", src.Vertex, wantVertex)
	}
	wantFragment := "#version 410 core\nout vec4 color;\n"
	if src.Fragment != wantFragment {
		t.Errorf("fragment = %q, want %q", src.Fragment, wantFragment)
	}
}

func TestSplitMarkerDetection(t *testing.T) {
	tests := []struct {
		name         string
		lines        []string
		wantVertex   string
		wantFragment string
	}{
		{
			name:         "fragment first",
			lines:        []string{"#shader fragment", "f", "#shader vertex", "v"},
			wantVertex:   "v\n",
			wantFragment: "f\n",
		},
		{
			name:         "repeated marker appends",
			lines:        []string{"#shader vertex", "a", "#shader fragment", "b", "#shader vertex", "c"},
			wantVertex:   "a\nc\n",
			wantFragment: "b\n",
		},
		{
			name:         "marker with surrounding text",
			lines:        []string{"  #shader   vertex  // stage one", "v"},
			wantVertex:   "v\n",
			wantFragment: "",
		},
		{
			name:         "unknown stage is not a marker",
			lines:        []string{"#shader vertex", "v", "#shader geometry"},
			wantVertex:   "v\n#shader geometry\n",
			wantFragment: "",
		},
		{
			name:         "keyword without tag is not a marker",
			lines:        []string{"#shader vertex", "// the fragment stage follows"},
			wantVertex:   "// the fragment stage follows\n",
			wantFragment: "",
		},
		{
			name:         "keyword before tag is not a marker",
			lines:        []string{"#shader vertex", "vertex #shader"},
			wantVertex:   "vertex #shader\n",
			wantFragment: "",
		},
		{
			name:         "markers are case sensitive",
			lines:        []string{"#shader vertex", "#SHADER fragment", "#shader Fragment"},
			wantVertex:   "#SHADER fragment\n#shader Fragment\n",
			wantFragment: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := Split(tt.lines)
			if src.Vertex != tt.wantVertex {
				t.Errorf("vertex = %q, want %q", src.Vertex, tt.wantVertex)
			}
			if src.Fragment != tt.wantFragment {
				t.Errorf("fragment = %q, want %q", src.Fragment, tt.wantFragment)
			}
		})
	}
}

func TestWrapRoundTrip(t *testing.T) {
	orig := Split([]string{
		"#shader vertex",
		"layout(location = 0) in vec4 position;",
		"void main() { gl_Position = position; }",
		"#shader fragment",
		"out vec4 color;",
		"",
		"void main() { color = vec4(1.0); }",
	})

	again, err := Parse(strings.NewReader(orig.Wrap()))
	if err != nil {
		t.Fatal(err)
	}
	if again != orig {
		t.Errorf("round trip changed the pair:\n got %+v\nwant %+v", again, orig)
	}
}

func TestParseLineEndings(t *testing.T) {
	src, err := Parse(strings.NewReader("#shader vertex\r\nv1\r\n#shader fragment\nf1"))
	if err != nil {
		t.Fatal(err)
	}
	if src.Vertex != "v1\r\n" {
		t.Errorf("vertex = %q, carriage returns must be kept verbatim", src.Vertex)
	}
	if src.Fragment != "f1\n" {
		t.Errorf("fragment = %q, last line without terminator must still end in a newline", src.Fragment)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParseReadError(t *testing.T) {
	_, err := Parse(failingReader{})
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Errorf("expected ErrResourceUnavailable, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Basic.shader")
	err := os.WriteFile(path, []byte("#shader vertex\nvoid main(){}\n#shader fragment\nvoid main(){}\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	src, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if src.Vertex != "void main(){}\n" || src.Fragment != "void main(){}\n" {
		t.Errorf("unexpected pair %+v", src)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.shader"))
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Errorf("expected ErrResourceUnavailable, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	src := Default()
	if !strings.Contains(src.Vertex, "gl_Position") {
		t.Errorf("built-in vertex stage looks wrong: %q", src.Vertex)
	}
	if !strings.Contains(src.Fragment, "color") {
		t.Errorf("built-in fragment stage looks wrong: %q", src.Fragment)
	}
	if strings.Contains(src.Vertex+src.Fragment, markerTag) {
		t.Error("markers leaked into the built-in source")
	}
}

func TestStageString(t *testing.T) {
	if Vertex.String() != "vertex" || Fragment.String() != "fragment" {
		t.Errorf("unexpected names %s %s", Vertex, Fragment)
	}
	if Stage(5).String() != "Stage(5)" {
		t.Errorf("unexpected name %s", Stage(5))
	}
}

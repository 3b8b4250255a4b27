package main

import (
	"fmt"
	"io"
	"os"

	"github.com/graphicsprogramming/quadrender/lib/config"
	"github.com/graphicsprogramming/quadrender/lib/renderer"
)

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

// run validates the config named in args[1], or the built-in one when
// no file is given, and prints it together with the split shader.
func run(args []string, out io.Writer) int {
	if len(args) > 2 {
		fmt.Fprintf(out, "Usage: %s [config file]\n", args[0])
		return 2
	}

	cfg := config.Default()
	if len(args) == 2 {
		var err error
		cfg, err = config.Parse(args[1])
		if err != nil {
			fmt.Fprintf(out, "Config invalid: %s\n", err)
			return 1
		}
	}

	src, err := renderer.LoadSource(cfg)
	if err != nil {
		fmt.Fprintf(out, "Shader invalid: %s\n", err)
		return 1
	}

	fmt.Fprint(out, "Config valid!\n\n")
	fmt.Fprint(out, cfg)

	fmt.Fprintf(out, "\nVERTEX\n%s\nFRAGMENT\n%s", src.Vertex, src.Fragment)
	return 0
}

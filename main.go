// Command clearbox evaluates a scene script and prints the placed
// obstacles with their collision-box boundaries as JSON.
//
// Usage:
//
//	clearbox [-config file.yaml] [-probe x,y] script.lisp
//	clearbox -           # read the script from stdin
//
// With -probe, each obstacle additionally reports its signed clearance
// distance from the probe point.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/perimetric/clearbox/pkg/config"
	"github.com/perimetric/clearbox/pkg/obstacle"
)

func main() {
	cfgPath := flag.String("config", "", "path to a YAML config file")
	probeArg := flag.String("probe", "", "probe point as x,y")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: clearbox [-config file.yaml] [-probe x,y] <script.lisp | ->")
		os.Exit(2)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	var probe *obstacle.Point
	if *probeArg != "" {
		pt, err := parseProbe(*probeArg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		probe = &pt
	}

	source, err := readSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result := NewApp(cfg).EvaluateAt(source, probe)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

func parseProbe(arg string) (obstacle.Point, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return obstacle.Point{}, fmt.Errorf("bad -probe value %q, want x,y", arg)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return obstacle.Point{}, fmt.Errorf("bad -probe value %q: %v", arg, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return obstacle.Point{}, fmt.Errorf("bad -probe value %q: %v", arg, err)
	}
	return obstacle.Point{X: x, Y: y}, nil
}

func readSource(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

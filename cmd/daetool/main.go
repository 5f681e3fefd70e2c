// daetool is a CLI utility for writing and inspecting COLLADA camera documents.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "camera", "cam":
		err = cmdCamera(args, stdout, stderr)
	case "build":
		err = cmdBuild(args, stdout, stderr)
	case "roundtrip", "rt":
		err = cmdRoundtrip(args, stdout, stderr)
	case "info":
		err = cmdInfo(args, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `daetool - COLLADA camera document utility

Usage:
  daetool <command> [options]

Commands:
  camera [flags]               Write a document with a single camera
  build <scene.yaml>           Convert a YAML scene description to COLLADA
  roundtrip <file.dae>         Read a document and write it back
  info <file.dae>              Show cameras and scenes in a document

Common flags:
  -config <file>   Config file (default ./daetool.yaml or the user config dir)
  -o <file>        Write to file instead of stdout
  -compact         Write without indentation
  -encoding <name> Output character encoding, e.g. ISO-8859-1
  -up-axis <axis>  X_UP, Y_UP or Z_UP
  -debug           Enable debug logging
  -log-file <file> Also log to a rotating file

Examples:
  daetool camera -id main -xfov 45 -aspect 1.78
  daetool camera -type orthographic -ymag 5 -translate 0,10,0 -o top.dae
  daetool camera -yfov 40 -translate 0,1,0 -orbit 10,30,45
  daetool build -o turntable.dae turntable.yaml
  daetool info turntable.dae`)
}

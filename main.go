//go:build !(js && wasm)

// Command dose2gmsh converts DOSXYZnrc 3ddose files to Gmsh msh files and
// other visualization formats.
//
// Usage:
//
//	dose2gmsh [flags] <input.3ddose>
//
// Examples:
//
//	# Gmsh mesh next to the input, water_block.msh
//	dose2gmsh water_block.3ddose
//
//	# ParaView legacy VTK
//	dose2gmsh -f vtk -o block.vtk water_block.3ddose
//
//	# Spreadsheet of voxel centres
//	dose2gmsh --format csv water_block.3ddose.gz
//
//	# Summary only
//	dose2gmsh --info water_block.3ddose
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/voxelsplace/dose2gmsh/dose"
	"github.com/voxelsplace/dose2gmsh/encode"
	"github.com/voxelsplace/dose2gmsh/utils"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.3.0"

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

const usageHeader = `dose2gmsh - convert dosxyznrc 3ddose files to Gmsh msh files

Usage:
  dose2gmsh [flags] <input.3ddose>

Flags:
`

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				if a.Value.String() == "INFO" {
					return slog.Attr{}
				}
			}
			return a
		},
	}))
}

func printError(w io.Writer, err error) {
	prefix := "error:"
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c := color.New(color.FgRed, color.Bold)
		c.EnableColor()
		prefix = c.Sprint(prefix)
	}
	fmt.Fprintln(w, prefix, err)
}

func formatNames() string {
	names := make([]string, len(encode.Formats))
	for i, f := range encode.Formats {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

func parseDims(s string) (nx, ny, nz int, err error) {
	if _, err = fmt.Sscanf(strings.ToLower(s), "%dx%dx%d", &nx, &ny, &nz); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid dimensions %q, want NXxNYxNZ", s)
	}
	return nx, ny, nz, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		input       string
		output      string
		formatName  string
		compression string
		synthetic   string
		seed        int64
		info        bool
		verbose     bool
		showVersion bool
	)

	fs := pflag.NewFlagSet("dose2gmsh", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&input, "input-file", "i", "", "the input 3ddose file (alternative to the positional argument)")
	fs.StringVarP(&output, "output-file", "o", "", "the output file name, defaults to <input_file> with the format's extension")
	fs.StringVarP(&formatName, "format", "f", encode.Msh2.String(), "output format: "+formatNames())
	fs.StringVarP(&compression, "compress", "z", "none", "output compression: none, gzip, zstd, zlib")
	fs.BoolVar(&info, "info", false, "print a YAML summary of the input instead of converting")
	fs.StringVar(&synthetic, "synthetic", "", "write a synthetic NXxNYxNZ phantom to --output-file instead of converting")
	fs.Int64Var(&seed, "seed", 1, "random seed for --synthetic")
	fs.BoolVarP(&verbose, "verbose", "v", false, "log debug details")
	fs.BoolVarP(&showVersion, "version", "V", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprint(stderr, usageHeader)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if showVersion {
		fmt.Fprintln(stdout, "dose2gmsh", version)
		return exitOK
	}

	lg := newLogger(stderr, verbose)

	comp, err := dose.ParseCompression(compression)
	if err != nil {
		printError(stderr, err)
		return exitUsage
	}

	if synthetic != "" {
		if output == "" {
			printError(stderr, errors.New("--synthetic requires --output-file"))
			return exitUsage
		}
		nx, ny, nz, err := parseDims(synthetic)
		if err != nil {
			printError(stderr, err)
			return exitUsage
		}
		if err := utils.RunGenerateSynthetic(output, nx, ny, nz, seed, comp); err != nil {
			printError(stderr, err)
			return exitFail
		}
		lg.Info("synthetic phantom written", "output", output, "voxels", synthetic, "seed", seed)
		return exitOK
	}

	switch {
	case input == "" && fs.NArg() == 1:
		input = fs.Arg(0)
	case input != "" && fs.NArg() == 0:
	default:
		fs.Usage()
		return exitUsage
	}

	if info {
		if err := utils.RunInfo(input, stdout); err != nil {
			printError(stderr, err)
			return exitFail
		}
		return exitOK
	}

	format, err := encode.ParseFormat(formatName)
	if err != nil {
		printError(stderr, err)
		return exitUsage
	}
	if _, err := utils.RunConvert(input, output, utils.Options{Format: format, Compression: comp, Log: lg}); err != nil {
		printError(stderr, err)
		return exitFail
	}
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

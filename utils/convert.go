package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/voxelsplace/dose2gmsh/dose"
	"github.com/voxelsplace/dose2gmsh/encode"
)

// Options controls RunConvert.
type Options struct {
	Format      encode.Format
	Compression dose.Compression
	// Log defaults to slog.Default().
	Log *slog.Logger
}

func (o Options) log() *slog.Logger {
	if o.Log != nil {
		return o.Log
	}
	return slog.Default()
}

// DefaultOutputPath replaces the extension of inPath with the format's,
// after dropping any compression suffix, and appends the output
// compression suffix.
func DefaultOutputPath(inPath string, f encode.Format, c dose.Compression) string {
	base := inPath
	for _, ext := range []string{".gz", ".zst", ".zz"} {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			base = base[:len(base)-len(ext)]
			break
		}
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + f.Ext() + c.Ext()
}

// RunConvert reads the 3ddose file at inPath and writes it to outPath in the
// requested format. An empty outPath means DefaultOutputPath. On failure no
// output file is left behind. It returns the path written.
func RunConvert(inPath, outPath string, opts Options) (string, error) {
	lg := opts.log()
	if outPath == "" {
		outPath = DefaultOutputPath(inPath, opts.Format, opts.Compression)
	}
	if sameFile(inPath, outPath) {
		return "", &dose.IoError{Op: "write", Path: outPath, Err: errOverwriteInput}
	}

	block, err := dose.LoadDoseBlock(inPath)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", inPath, err)
	}
	lg.Debug("parsed dose block",
		"input", inPath,
		"voxels", block.Counts,
		"uncertainty", block.HasErrors(),
		"fingerprint", block.FingerprintHex())

	var buf bytes.Buffer
	if err := encode.Write(&buf, opts.Format, block); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", opts.Format, err)
	}
	data, err := dose.Compress(buf.Bytes(), opts.Compression)
	if err != nil {
		return "", fmt.Errorf("failed to compress output: %w", err)
	}
	if err := writeFileAtomic(outPath, bytes.NewReader(data)); err != nil {
		return "", err
	}
	lg.Info("converted",
		"input", inPath,
		"output", outPath,
		"format", opts.Format.String(),
		"compression", opts.Compression.String(),
		"bytes", len(data))
	return outPath, nil
}

var errOverwriteInput = errors.New("output would overwrite the input file")

// sameFile reports whether a and b name the same file, either by path or,
// when both exist, by identity.
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}

// writeFileAtomic writes r to a temp file beside path and renames it into
// place. The temp file is removed on every failure path.
func writeFileAtomic(path string, r io.Reader) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &dose.IoError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = io.Copy(tmp, r); err != nil {
		return &dose.IoError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Chmod(0o644); err != nil {
		return &dose.IoError{Op: "chmod", Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &dose.IoError{Op: "close", Path: path, Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return &dose.IoError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// RunInfo writes a YAML summary of the 3ddose file at inPath to w.
func RunInfo(inPath string, w io.Writer) error {
	block, err := dose.LoadDoseBlock(inPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", inPath, err)
	}
	out, err := block.Summary().YAML()
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

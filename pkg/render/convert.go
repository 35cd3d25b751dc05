package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/tiler/pkg/errors"
)

// rsvgBinary ships with librsvg (brew install librsvg, apt install
// librsvg2-bin).
const rsvgBinary = "rsvg-convert"

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvg(ctx, svg, "pdf")
}

// ToPNG converts an SVG document to PNG, zoomed by scale.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return rsvg(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := exec.LookPath(rsvgBinary)
	return err == nil
}

func rsvg(ctx context.Context, svg []byte, format string, flags ...string) ([]byte, error) {
	if !Available() {
		return nil, errors.New(errors.ErrCodeInternal,
			"%s output needs %s from librsvg (brew install librsvg, apt install librsvg2-bin)", format, rsvgBinary)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, rsvgBinary, append([]string{"--format", format}, flags...)...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", rsvgBinary, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

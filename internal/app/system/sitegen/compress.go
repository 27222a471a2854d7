package sitegen

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"
)

// minCompressSize skips files too small to benefit.
const minCompressSize = 512

// Compressible reports whether content of this type is worth precompressing.
// Images other than SVG and fonts are already compressed.
func Compressible(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		switch {
		case strings.HasPrefix(m.String(), "text/"),
			m.Is("image/svg+xml"),
			m.Is("application/json"),
			m.Is("application/xml"),
			m.Is("application/javascript"):
			return true
		}
	}
	return false
}

// precompress writes file.gz and file.br beside file when its content is
// compressible. It reports whether it wrote anything.
func precompress(file string) (bool, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return false, err
	}
	if len(data) < minCompressSize || !Compressible(mimetype.Detect(data)) {
		return false, nil
	}

	var gz bytes.Buffer
	gw, err := gzip.NewWriterLevel(&gz, gzip.BestCompression)
	if err != nil {
		return false, err
	}
	if err := writeAll(gw, data); err != nil {
		return false, err
	}

	var br bytes.Buffer
	if err := writeAll(brotli.NewWriterLevel(&br, brotli.BestCompression), data); err != nil {
		return false, err
	}

	if err := os.WriteFile(file+".gz", gz.Bytes(), 0o644); err != nil {
		return false, err
	}
	if err := os.WriteFile(file+".br", br.Bytes(), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func writeAll(w io.WriteCloser, data []byte) error {
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

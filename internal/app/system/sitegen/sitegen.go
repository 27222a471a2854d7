// Package sitegen renders the site into a directory of static files that any
// static host can serve. Pages are rendered in-process through the same
// handler the server uses.
package sitegen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/dalemusser/portfolio/internal/app/system/timeouts"
	"github.com/yosssi/gohtml"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NotFoundPath is requested to produce 404.html. Any path the site does not
// route works; this one is reserved for it.
const NotFoundPath = "/__not-found__"

// DefaultConcurrency bounds parallel page renders and file copies.
const DefaultConcurrency = 8

// Options configures one export run.
type Options struct {
	// Handler serves the pages. It must answer 200 for every entry in Paths
	// and 404 for NotFoundPath.
	Handler http.Handler
	Paths   []string

	// PublicDir is copied to the root of OutDir. Empty skips the copy.
	PublicDir string
	OutDir    string

	Pretty      bool // reformat HTML
	Precompress bool // write .gz and .br next to compressible files
	Concurrency int

	Log *zap.Logger
}

// Result counts what was written.
type Result struct {
	Pages      int
	Assets     int
	Compressed int
}

// ErrUnexpectedStatus is returned when a page does not render with the
// status it should.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Export renders every path in opts.Paths plus the not-found page into
// opts.OutDir and copies opts.PublicDir next to them.
func Export(ctx context.Context, opts Options) (Result, error) {
	if opts.Handler == nil {
		return Result{}, errors.New("sitegen: nil handler")
	}
	if opts.OutDir == "" {
		return Result{}, errors.New("sitegen: empty output dir")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	var pages, assets, compressed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, p := range opts.Paths {
		g.Go(func() error {
			file, err := renderPage(gctx, opts, p, http.StatusOK, PagePath(p))
			if err != nil {
				return err
			}
			pages.Add(1)
			return finish(opts, file, &compressed)
		})
	}
	g.Go(func() error {
		file, err := renderPage(gctx, opts, NotFoundPath, http.StatusNotFound, "404.html")
		if err != nil {
			return err
		}
		pages.Add(1)
		return finish(opts, file, &compressed)
	})

	if opts.PublicDir != "" {
		err := filepath.WalkDir(opts.PublicDir, func(src string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(opts.PublicDir, src)
			if err != nil {
				return err
			}
			// Precompressed variants are regenerated from their source.
			if ext := filepath.Ext(rel); ext == ".gz" || ext == ".br" {
				return nil
			}
			g.Go(func() error {
				dst := filepath.Join(opts.OutDir, rel)
				if err := copyFile(src, dst); err != nil {
					return fmt.Errorf("copy %s: %w", rel, err)
				}
				assets.Add(1)
				return finish(opts, dst, &compressed)
			})
			return nil
		})
		if err != nil {
			_ = g.Wait()
			return Result{}, fmt.Errorf("walk public dir: %w", err)
		}
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Pages: int(pages.Load()), Assets: int(assets.Load()), Compressed: int(compressed.Load())}
	opts.Log.Info("static export complete",
		zap.String("out", opts.OutDir),
		zap.Int("pages", res.Pages),
		zap.Int("assets", res.Assets),
		zap.Int("compressed", res.Compressed))
	return res, nil
}

// PagePath maps a routed path to its file under the output dir:
// "/" → "index.html", "/blog/post" → "blog/post/index.html".
func PagePath(route string) string {
	clean := strings.Trim(path.Clean("/"+route), "/")
	if clean == "" {
		return "index.html"
	}
	return filepath.Join(filepath.FromSlash(clean), "index.html")
}

func renderPage(ctx context.Context, opts Options, route string, want int, rel string) (string, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Export(), opts.Log, "export "+route)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, route, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	opts.Handler.ServeHTTP(rec, req)

	if rec.Code != want {
		return "", fmt.Errorf("render %s: %w: got %d, want %d", route, ErrUnexpectedStatus, rec.Code, want)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("render %s: %w", route, err)
	}

	body := rec.Body.Bytes()
	if opts.Pretty {
		body = gohtml.FormatBytes(body)
	}

	dst := filepath.Join(opts.OutDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, body, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	opts.Log.Debug("exported page", zap.String("path", route), zap.String("file", rel))
	return dst, nil
}

func finish(opts Options, file string, compressed *atomic.Int64) error {
	if !opts.Precompress {
		return nil
	}
	ok, err := precompress(file)
	if err != nil {
		return fmt.Errorf("precompress %s: %w", file, err)
	}
	if ok {
		compressed.Add(1)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Command softgpu renders a scene of built-in meshes with the softgpu
// pipeline and writes PNG files.
//
// Usage:
//
//	softgpu [-scene scene.yaml] [-output out.png] [-frames 36 -output frame_%03d.png]
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/softgpu"
	"github.com/gogpu/softgpu/internal/parallel"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "YAML scene file (default: built-in scene)")
		output    = flag.String("output", "softgpu.png", "output file; use a %d verb for animations")
		width     = flag.Int("width", 0, "override image width")
		height    = flag.Int("height", 0, "override image height")
		samples   = flag.Int("samples", 0, "override samples per pixel (1, 2, 4, 8, 16)")
		workers   = flag.Int("workers", -1, "override frames rendered concurrently (0 = GOMAXPROCS)")
		frames    = flag.Int("frames", 0, "override number of animation frames")
		preview   = flag.Int("preview", 0, "print a preview this many columns wide to the terminal")
		hud       = flag.Bool("hud", false, "draw frame statistics into the image")
		verbose   = flag.Bool("v", false, "log pipeline activity")
	)
	flag.Parse()

	if *verbose {
		softgpu.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	scene := DefaultScene()
	if *scenePath != "" {
		s, err := LoadScene(*scenePath)
		if err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
		scene = s
	}
	override(&scene.Width, *width)
	override(&scene.Height, *height)
	override(&scene.Samples, *samples)
	override(&scene.Frames, *frames)
	if *workers >= 0 {
		scene.Workers = *workers
	}

	if err := run(scene, *output, *preview, *hud); err != nil {
		log.Fatal(err)
	}
}

func override(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func run(s *Scene, output string, previewCols int, hud bool) error {
	if err := s.Validate(); err != nil {
		return err
	}
	objs, err := prepare(s)
	if err != nil {
		return err
	}

	workers := s.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool := parallel.NewWorkerPool(min(workers, s.Frames))
	defer pool.Close()

	// One pipeline per worker; a pipeline renders one frame at a time.
	pipes := make([]*softgpu.Pipeline, pool.Workers())
	for i := range pipes {
		p, err := softgpu.New(s.Width, s.Height, s.Options()...)
		if err != nil {
			return fmt.Errorf("creating pipeline: %w", err)
		}
		defer p.Close()
		pipes[i] = p
	}

	bar := progressbar.NewOptions(s.Frames,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionShowCount(),
	)

	start := time.Now()
	stats := make([]softgpu.FrameStats, s.Frames)
	var last *image.NRGBA
	jobs := make([]parallel.Job, s.Frames)
	for n := range s.Frames {
		jobs[n] = func(worker int) error {
			p := pipes[worker]
			frame, err := renderFrame(p, s, objs, s.Spin*float32(n))
			if err != nil {
				return fmt.Errorf("frame %d: %w", n, err)
			}
			stats[n] = frame.Stats()

			img := frame.ToImage()
			if hud {
				drawHUD(img, statsLine(n, stats[n]), fmt.Sprintf("%dx%d %dx MSAA", s.Width, s.Height, p.SampleCount()))
			}
			path := outputPath(output, n, s.Frames)
			if err := savePNG(path, img); err != nil {
				return fmt.Errorf("saving %s: %w", path, err)
			}
			if n == s.Frames-1 {
				last = img
			}
			return bar.Add(1)
		}
	}
	err = pool.ExecuteAll(jobs)
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	if previewCols > 0 && last != nil {
		if err := writePreview(os.Stdout, last, previewCols); err != nil {
			return err
		}
	}

	var triangles, samples int
	for _, st := range stats {
		triangles += st.Triangles
		samples += st.SamplesWritten
	}
	log.Print(printer.Sprintf("Rendered %d frame(s) on %d worker(s) in %v: %d triangles, %d samples written",
		s.Frames, pool.Workers(), time.Since(start).Round(time.Millisecond), triangles, samples))
	return nil
}

// outputPath formats the n-th file name. Single frames use the name as is;
// animations use its %d verb, or get a numeric suffix when it has none.
func outputPath(name string, n, frames int) string {
	if frames == 1 {
		return name
	}
	if strings.Contains(name, "%") {
		return fmt.Sprintf(name, n)
	}
	ext := ".png"
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%03d%s", base, n, ext)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

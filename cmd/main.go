package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/richinsley/nativetoy/egl"
	"github.com/richinsley/nativetoy/encoder"
	"github.com/richinsley/nativetoy/gles"
	"github.com/richinsley/nativetoy/glfwcontext"
	"github.com/richinsley/nativetoy/graphics"
	"github.com/richinsley/nativetoy/host"
	options "github.com/richinsley/nativetoy/options"
	renderer "github.com/richinsley/nativetoy/renderer"
	"github.com/richinsley/nativetoy/shader"
	"github.com/richinsley/nativetoy/translator"
)

func init() {
	// EGL and GL calls must stay on the thread that made the context current.
	runtime.LockOSThread()
}

func runWindow(ctx context.Context, opts *options.ShaderOptions) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	window, err := glfwcontext.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Shutdown()

	ws, err := egl.New()
	if err != nil {
		return err
	}

	e := renderer.New(ws, gles.NewWithLoader(egl.GetProcAddress), window, renderer.WithClockResolution(*opts.ClockResolution))
	log.Println("Starting interactive render loop...")
	err = e.Run(ctx)
	log.Printf("Presented %d frames", e.Frames())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runRecord(ctx context.Context, opts *options.ShaderOptions) error {
	ws, err := egl.NewOffscreen(*opts.Width, *opts.Height)
	if err != nil {
		return err
	}

	enc, err := encoder.NewFFmpegEncoder(opts)
	if err != nil {
		return err
	}

	queue := host.NewQueue(0)
	queue.Emit(host.Event{Kind: host.WindowAvailable, Window: graphics.OffscreenWindow})

	e := renderer.New(ws, gles.NewWithLoader(egl.GetProcAddress), queue,
		renderer.WithFixedStep(*opts.FPS),
		renderer.WithClockResolution(*opts.ClockResolution),
		renderer.WithImmediateDraw(false),
		renderer.WithFrameSink(enc),
	)

	total := opts.TotalFrames()
	log.Printf("Starting offscreen render loop for %d frames...", total)
	shutdownSent := false
	for e.Step() {
		if shutdownSent {
			continue
		}
		// Not Running here means the pbuffer could not be brought up.
		if e.Frames() >= total || ctx.Err() != nil || e.State() != renderer.Running {
			queue.Emit(host.Event{Kind: host.ShutdownRequested})
			shutdownSent = true
		}
	}

	if err := enc.Close(); err != nil {
		return err
	}
	if e.Frames() < total {
		return fmt.Errorf("rendered %d of %d frames", e.Frames(), total)
	}
	log.Printf("Successfully rendered to %s", *opts.OutputFile)
	return nil
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("Native shader harness: renders a raymarched scene in a window or to a video file")
		flag.PrintDefaults()
		return
	}
	if err := opts.Check(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	if *opts.Validate {
		if err := translator.CheckFragment(shader.GetFragmentShader(), shader.Uniforms()...); err != nil {
			log.Fatalf("Shader validation failed: %v", err)
		}
		log.Println("Fragment shader validated")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch *opts.Mode {
	case "record":
		err = runRecord(ctx, opts)
	default:
		err = runWindow(ctx, opts)
	}
	if err != nil {
		log.Fatalf("%s mode failed: %v", *opts.Mode, err)
	}
}

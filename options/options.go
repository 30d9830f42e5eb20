package options

import (
	"flag"
	"fmt"
	"math"
	"time"
)

type ShaderOptions struct {
	Help            *bool
	Mode            *string // "window" or "record"
	Duration        *float64
	FPS             *int
	Width           *int
	Height          *int
	OutputFile      *string
	FFMPEGPath      *string
	Codec           *string
	ClockResolution *time.Duration // Uniform time is truncated to this step; 0 disables.
	Validate        *bool          // Check the fragment shader with the shader translator before running.
}

// Register binds the options to flags on fs.
func Register(fs *flag.FlagSet) *ShaderOptions {
	return &ShaderOptions{
		Help:            fs.Bool("help", false, "Show help message"),
		Mode:            fs.String("mode", "window", "Run mode: window or record"),
		Duration:        fs.Float64("duration", 10.0, "Duration in seconds for record mode"),
		FPS:             fs.Int("fps", 60, "Frames per second for record mode"),
		Width:           fs.Int("width", 1280, "Surface width"),
		Height:          fs.Int("height", 720, "Surface height"),
		OutputFile:      fs.String("output", "output.mp4", "Output file for record mode"),
		FFMPEGPath:      fs.String("ffmpeg", "", "Path to the ffmpeg executable (defaults to the one in PATH)"),
		Codec:           fs.String("codec", "h264", "Video codec for record mode: h264 or hevc"),
		ClockResolution: fs.Duration("clock-resolution", 0, "Truncate shader time to this resolution (e.g. 1ms)"),
		Validate:        fs.Bool("validate", false, "Validate the fragment shader before running"),
	}
}

// Check reports the first invalid option.
func (o *ShaderOptions) Check() error {
	switch *o.Mode {
	case "window", "record":
	default:
		return fmt.Errorf("unknown mode %q", *o.Mode)
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height)
	}
	if *o.Mode == "record" {
		if *o.FPS <= 0 {
			return fmt.Errorf("invalid fps %d", *o.FPS)
		}
		if *o.Duration <= 0 {
			return fmt.Errorf("invalid duration %v", *o.Duration)
		}
		if *o.OutputFile == "" {
			return fmt.Errorf("record mode requires -output")
		}
		if o.TotalFrames() < 1 {
			return fmt.Errorf("duration %v at %d fps renders no frames", *o.Duration, *o.FPS)
		}
	}
	switch *o.Codec {
	case "h264", "hevc":
	default:
		return fmt.Errorf("unknown codec %q", *o.Codec)
	}
	if *o.ClockResolution < 0 {
		return fmt.Errorf("invalid clock resolution %v", *o.ClockResolution)
	}
	return nil
}

// TotalFrames is the number of frames record mode renders.
func (o *ShaderOptions) TotalFrames() uint64 {
	return uint64(math.Round(*o.Duration * float64(*o.FPS)))
}

package encoder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/richinsley/nativetoy/options"
)

const bytesPerPixel = 4 // RGBA

// frameQueueSize bounds how many frames may wait for ffmpeg.
const frameQueueSize = 4

var ErrClosed = errors.New("encoder closed")

// Frame represents a single rendered video frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// FFmpegEncoder streams raw RGBA frames into an ffmpeg child process. It
// satisfies renderer.FrameSink.
type FFmpegEncoder struct {
	width, height int
	frameSize     int

	pipeWriter *io.PipeWriter
	frames     chan *Frame
	pts        int64

	mu     sync.Mutex // guards closed, pts and sends on frames
	closed bool

	errMu sync.Mutex
	err   error // first failure from the writer or ffmpeg

	writerDone chan struct{}
	ffmpegDone chan error
}

// getArgs builds the ffmpeg input and output arguments for goos.
func getArgs(options *options.ShaderOptions, goos string) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", *options.Width, *options.Height),
		"framerate": *options.FPS,
	}

	// glReadPixels rows start at the bottom.
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}

	switch goos {
	case "darwin":
		log.Println("Using macOS (VideoToolbox) hardware acceleration.")
		if *options.Codec == "hevc" {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
		outputArgs["b:v"] = "25M"
	default:
		log.Println("Using software encoding pipeline (no hardware acceleration).")
		if *options.Codec == "hevc" {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
		outputArgs["preset"] = "veryfast"
	}

	if *options.Codec == "hevc" && strings.HasSuffix(*options.OutputFile, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

// NewFFmpegEncoder starts ffmpeg writing to options.OutputFile.
func NewFFmpegEncoder(options *options.ShaderOptions) (*FFmpegEncoder, error) {
	if *options.Width <= 0 || *options.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", *options.Width, *options.Height)
	}
	if *options.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", *options.FPS)
	}

	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := getArgs(options, runtime.GOOS)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*options.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *options.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*options.FFMPEGPath)
	}

	e := &FFmpegEncoder{
		width:      *options.Width,
		height:     *options.Height,
		frameSize:  *options.Width * *options.Height * bytesPerPixel,
		pipeWriter: pipeWriter,
		frames:     make(chan *Frame, frameQueueSize),
		writerDone: make(chan struct{}),
		ffmpegDone: make(chan error, 1),
	}

	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg exits early.
		if err != nil {
			pipeReader.CloseWithError(err)
		} else {
			pipeReader.CloseWithError(io.ErrClosedPipe)
		}
		e.ffmpegDone <- err
	}()
	go e.run()

	log.Printf("Recording %dx%d @ %d fps to %s", e.width, e.height, *options.FPS, *options.OutputFile)
	return e, nil
}

// run is the consumer: it copies queued frames into ffmpeg's stdin.
func (e *FFmpegEncoder) run() {
	defer close(e.writerDone)
	for frame := range e.frames {
		if e.failed() != nil {
			continue
		}
		if _, err := e.pipeWriter.Write(frame.Pixels); err != nil {
			log.Printf("Error writing frame %d to ffmpeg: %v", frame.PTS, err)
			e.fail(err)
		}
	}
	e.pipeWriter.Close()
}

func (e *FFmpegEncoder) fail(err error) {
	e.errMu.Lock()
	if e.err == nil {
		e.err = err
	}
	e.errMu.Unlock()
}

func (e *FFmpegEncoder) failed() error {
	e.errMu.Lock()
	defer e.errMu.Unlock()
	return e.err
}

// WriteFrame queues a copy of pixels; the caller may reuse the slice.
func (e *FFmpegEncoder) WriteFrame(pixels []byte, width, height int) error {
	if width != e.width || height != e.height {
		return fmt.Errorf("frame size %dx%d does not match encoder size %dx%d", width, height, e.width, e.height)
	}
	if len(pixels) < e.frameSize {
		return fmt.Errorf("short frame: %d bytes, want %d", len(pixels), e.frameSize)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if err := e.failed(); err != nil {
		return err
	}
	frame := &Frame{Pixels: append([]byte(nil), pixels[:e.frameSize]...), PTS: e.pts}
	e.pts++
	e.frames <- frame
	return nil
}

// Frames returns the number of frames accepted so far.
func (e *FFmpegEncoder) Frames() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pts
}

// Close flushes queued frames and waits for ffmpeg to finish the file.
func (e *FFmpegEncoder) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	close(e.frames)
	e.mu.Unlock()

	<-e.writerDone
	ffmpegErr := <-e.ffmpegDone
	if ffmpegErr != nil {
		return fmt.Errorf("ffmpeg failed: %w", ffmpegErr)
	}
	if err := e.failed(); err != nil {
		return fmt.Errorf("failed to write frames: %w", err)
	}
	log.Printf("Recording finished after %d frames", e.pts)
	return nil
}

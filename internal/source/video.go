package source

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os/exec"
)

// VideoSource extracts single frames from a video file with ffmpeg.
// Decoding stays out of process, the same way the encoder side works; one
// frame travels back as PNG over stdout.
type VideoSource struct {
	path     string
	width    int
	height   int
	duration float64
}

func NewVideoSource(path string, width, height int, duration float64) *VideoSource {
	return &VideoSource{path: path, width: width, height: height, duration: duration}
}

func (s *VideoSource) Dimensions() (int, int) { return s.width, s.height }

func (s *VideoSource) Duration() float64 { return s.duration }

func (s *VideoSource) FrameAt(t float64) (image.Image, error) {
	if t < 0 {
		t = 0
	}
	if s.duration > 0 && t > s.duration {
		t = s.duration
	}
	cmd := exec.Command("ffmpeg",
		"-ss", fmt.Sprintf("%f", t),
		"-i", s.path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame extract at %.3fs: %v\n%s", t, err, errBuf.String())
	}
	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decode extracted frame: %w", err)
	}
	return img, nil
}

func (s *VideoSource) Close() error { return nil }

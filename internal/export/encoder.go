package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/ivlev/clipforge/internal/config"
	"github.com/ivlev/clipforge/internal/system"
)

// Encoder принимает готовые кадры и PCM-аудио и собирает из них итоговый
// файл. Кадры подаются строго по порядку.
type Encoder interface {
	Start(width, height int, settings config.ExportSettings) error
	WriteFrame(img *image.RGBA) error
	WriteAudio(pcm []int16) error
	// Close финализирует файл (включая мультиплексирование аудио).
	Close() error
	// Abort прерывает кодирование и удаляет незавершённые файлы.
	Abort()
}

// FFmpegEncoder кодирует видео через ffmpeg: сырые RGBA-кадры идут в stdin,
// аудио копится в сыром PCM-файле и подмешивается вторым проходом при Close.
// Двухпроходная схема нужна потому, что через один stdin нельзя передать
// одновременно видео и аудио.
type FFmpegEncoder struct {
	OutputPath string

	settings config.ExportSettings
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stderr   bytes.Buffer
	tempDir  string
	videoTmp string
	audioTmp *os.File
	hasAudio bool
	started  bool
}

func NewFFmpegEncoder(outputPath string) *FFmpegEncoder {
	return &FFmpegEncoder{OutputPath: outputPath}
}

func (e *FFmpegEncoder) Start(width, height int, settings config.ExportSettings) error {
	if e.started {
		return fmt.Errorf("энкодер уже запущен")
	}
	e.settings = settings

	var err error
	e.tempDir, err = os.MkdirTemp("", "clipforge_")
	if err != nil {
		return err
	}
	e.videoTmp = filepath.Join(e.tempDir, "video."+settings.Format)

	codec := settings.Codec
	if codec == "" {
		codec, _ = system.GetBestH264Encoder()
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", strconv.FormatFloat(settings.FrameRate, 'f', -1, 64),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", codec,
	}
	args = append(args, qualityArgs(codec, settings)...)
	if settings.KeyframeInterval > 0 {
		args = append(args, "-g", strconv.Itoa(settings.KeyframeInterval))
	}
	args = append(args, e.videoTmp)

	e.cmd = exec.Command("ffmpeg", args...)
	e.cmd.Stderr = &e.stderr

	e.stdin, err = e.cmd.StdinPipe()
	if err != nil {
		e.cleanup()
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := e.cmd.Start(); err != nil {
		e.cleanup()
		return fmt.Errorf("ffmpeg start error: %w", err)
	}
	e.started = true
	return nil
}

// qualityArgs подбирает флаги качества под конкретный энкодер.
func qualityArgs(codec string, s config.ExportSettings) []string {
	if s.BitrateMode == "bitrate" && s.Bitrate > 0 {
		return []string{"-b:v", fmt.Sprintf("%dk", s.Bitrate)}
	}
	switch codec {
	case "h264_videotoolbox":
		// VideoToolbox не понимает CRF, переводим качество в битрейт
		return []string{"-b:v", fmt.Sprintf("%dk", (51-s.Quality)*200)}
	case "h264_nvenc":
		return []string{"-cq", strconv.Itoa(s.Quality)}
	default: // libx264
		return []string{"-crf", strconv.Itoa(s.Quality), "-preset", "medium"}
	}
}

func (e *FFmpegEncoder) WriteFrame(img *image.RGBA) error {
	if !e.started {
		return fmt.Errorf("энкодер не запущен")
	}
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min.X != 0 || bounds.Min.Y != 0 {
		tmp := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(tmp, tmp.Bounds(), img, bounds.Min, draw.Src)
		img = tmp
	}
	_, err := e.stdin.Write(img.Pix)
	return err
}

func (e *FFmpegEncoder) WriteAudio(pcm []int16) error {
	if !e.started {
		return fmt.Errorf("энкодер не запущен")
	}
	if len(pcm) == 0 {
		return nil
	}
	if e.audioTmp == nil {
		f, err := os.Create(filepath.Join(e.tempDir, "audio.pcm"))
		if err != nil {
			return err
		}
		e.audioTmp = f
		e.hasAudio = true
	}
	return binary.Write(e.audioTmp, binary.LittleEndian, pcm)
}

func (e *FFmpegEncoder) Close() error {
	if !e.started {
		return fmt.Errorf("энкодер не запущен")
	}
	defer e.cleanup()

	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w (%s)", err, e.stderr.String())
	}

	if !e.hasAudio {
		return copyFile(e.videoTmp, e.OutputPath)
	}

	if err := e.audioTmp.Close(); err != nil {
		return err
	}

	// Второй проход: мультиплексируем видео и PCM в итоговый контейнер
	args := []string{
		"-y",
		"-i", e.videoTmp,
		"-f", "s16le",
		"-ar", strconv.Itoa(e.settings.Audio.SampleRate),
		"-ac", strconv.Itoa(e.settings.Audio.Channels),
		"-i", e.audioTmp.Name(),
		"-c:v", "copy",
		"-c:a", audioCodec(e.settings),
		"-b:a", fmt.Sprintf("%dk", e.settings.Audio.Bitrate),
		"-shortest",
		e.OutputPath,
	}
	cmd := exec.Command("ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg mux error: %w, output: %s", err, string(out))
	}
	return nil
}

func audioCodec(s config.ExportSettings) string {
	switch s.Audio.Format {
	case "mp3":
		return "libmp3lame"
	case "wav":
		return "pcm_s16le"
	default:
		return "aac"
	}
}

func (e *FFmpegEncoder) Abort() {
	if e.started {
		e.stdin.Close()
		e.cmd.Process.Kill()
		e.cmd.Wait()
	}
	e.cleanup()
	os.Remove(e.OutputPath)
}

func (e *FFmpegEncoder) cleanup() {
	if e.audioTmp != nil {
		e.audioTmp.Close()
		e.audioTmp = nil
	}
	if e.tempDir != "" {
		os.RemoveAll(e.tempDir)
		e.tempDir = ""
	}
	e.started = false
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
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

package audio

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"sync"
)

// FileSource декодирует аудиофайл через ffmpeg в память целиком.
// Декод выполняется лениво при первом запросе и кэшируется для целевого
// формата, повторные окна читаются из памяти.
type FileSource struct {
	Path string

	mu         sync.Mutex
	pcm        []int16
	sampleRate int
	channels   int
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Samples(start float64, out []int16, sampleRate, channels int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pcm == nil || s.sampleRate != sampleRate || s.channels != channels {
		if err := s.decode(sampleRate, channels); err != nil {
			return err
		}
	}

	offset := int(start*float64(sampleRate)+0.5) * channels
	for i := range out {
		j := offset + i
		if j >= 0 && j < len(s.pcm) {
			out[i] = s.pcm[j]
		} else {
			out[i] = 0
		}
	}
	return nil
}

func (s *FileSource) decode(sampleRate, channels int) error {
	// ffmpeg отдаёт сырой s16le в stdout, без контейнера
	cmd := exec.Command("ffmpeg",
		"-i", s.Path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"-v", "error",
		"-",
	)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("декодирование аудио %s: %w (%s)", s.Path, err, errBuf.String())
	}

	raw := outBuf.Bytes()
	pcm := make([]int16, len(raw)/2)
	for i := range pcm {
		pcm[i] = int16(raw[2*i]) | int16(raw[2*i+1])<<8
	}
	s.pcm = pcm
	s.sampleRate = sampleRate
	s.channels = channels
	return nil
}

func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pcm = nil
	return nil
}

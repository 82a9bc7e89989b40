// Package export прогоняет проект через компоновщик и кодировщик: кадры
// рендерятся параллельно с ограниченной предвыборкой, кодируются строго по
// порядку, аудио подмешивается покадрово из микшера.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/ivlev/clipforge/internal/audio"
	"github.com/ivlev/clipforge/internal/config"
	"github.com/ivlev/clipforge/internal/renderer"
	"github.com/ivlev/clipforge/internal/system"
	"github.com/ivlev/clipforge/internal/timeline"
)

// ErrEmptyTimeline возвращается при попытке экспортировать проект без клипов.
var ErrEmptyTimeline = errors.New("таймлайн пуст, нечего экспортировать")

// Progress сообщает о готовности очередного кадра.
type Progress struct {
	Frame int
	Total int
	State State
}

// Result фиксирует итог задания.
type Result struct {
	State   State
	Frames  int
	Err     error
	Elapsed time.Duration
}

type Pipeline struct {
	comp  *renderer.Compositor
	mixer *audio.Mixer
	enc   Encoder
}

func NewPipeline(comp *renderer.Compositor, mixer *audio.Mixer, enc Encoder) *Pipeline {
	return &Pipeline{comp: comp, mixer: mixer, enc: enc}
}

// Job — запущенное задание экспорта. Канал Progress() выдаёт ровно одно
// событие на кадр и обязан вычитываться до закрытия: потребитель задаёт темп
// конвейера. Завершение ожидается через Wait(). Cancel действует
// кооперативно: рендер останавливается на границе кадра, после отмены
// записей в энкодер нет.
type Job struct {
	mu       sync.Mutex
	state    State
	cancel   context.CancelFunc
	progress chan Progress
	done     chan struct{}
	result   Result
}

func (j *Job) Progress() <-chan Progress { return j.progress }

func (j *Job) Cancel() { j.cancel() }

func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Wait блокируется до терминального состояния задания.
func (j *Job) Wait() Result {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// setState выполняет валидированный переход. Недопустимые переходы
// игнорируются, терминальное состояние выставляется ровно один раз.
func (j *Job) setState(to State) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !isAllowedTransition(j.state, to) {
		return false
	}
	j.state = to
	return true
}

// emit доставляет событие без потерь: по одному на кадр, темп задаёт
// потребитель. Отмена задания снимает блокировку.
func (j *Job) emit(ctx context.Context, p Progress) {
	select {
	case j.progress <- p:
	case <-ctx.Done():
	}
}

// Export запускает асинхронный экспорт проекта. Снимок проекта делается до
// старта, правки после запуска на задание не влияют.
func (p *Pipeline) Export(ctx context.Context, project *timeline.Project, settings config.ExportSettings) (*Job, error) {
	if err := project.Validate(); err != nil {
		return nil, err
	}
	duration := project.Duration()
	if duration <= 0 {
		return nil, ErrEmptyTimeline
	}
	fps := settings.FrameRate
	if fps <= 0 {
		fps = project.Settings.FrameRate
	}
	if fps <= 0 {
		return nil, fmt.Errorf("некорректная частота кадров: %v", fps)
	}

	snapshot := project.Clone()
	jobCtx, cancel := context.WithCancel(ctx)
	job := &Job{
		state:    StateIdle,
		cancel:   cancel,
		progress: make(chan Progress, 64),
		done:     make(chan struct{}),
	}

	go p.run(jobCtx, job, snapshot, settings, fps, duration)
	return job, nil
}

type frameOut struct {
	img *image.RGBA
	err error
}

type frameSlot struct {
	index int
	ch    chan frameOut
}

func (p *Pipeline) run(ctx context.Context, job *Job, project *timeline.Project, settings config.ExportSettings, fps, duration float64) {
	start := time.Now()
	total := int(math.Ceil(duration * fps))

	outW, outH := settings.Width, settings.Height
	if outW <= 0 || outH <= 0 {
		outW, outH = project.Settings.Width, project.Settings.Height
	}
	needScale := outW != project.Settings.Width || outH != project.Settings.Height

	finish := func(frames int, err error) {
		job.cancel()
		state := StateCompleted
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			state = StateCancelled
			err = context.Canceled
		default:
			state = StateFailed
		}
		if state != StateCompleted {
			p.enc.Abort()
		}
		job.setState(state)
		job.mu.Lock()
		job.result = Result{State: state, Frames: frames, Err: err, Elapsed: time.Since(start)}
		job.mu.Unlock()
		close(job.progress)
		close(job.done)
	}

	if err := p.enc.Start(outW, outH, settings); err != nil {
		finish(0, fmt.Errorf("запуск энкодера: %w", err))
		return
	}
	job.setState(StateRendering)

	// Глубина предвыборки ограничена и памятью, и числом ядер
	depth := system.PrefetchDepth(project.Settings.Width, project.Settings.Height)
	if w := system.RenderWorkers() * 2; depth > w {
		depth = w
	}
	if depth > total {
		depth = total
	}
	if depth < 1 {
		depth = 1
	}

	sem := semaphore.NewWeighted(int64(depth))
	g, gctx := errgroup.WithContext(ctx)
	slots := make(chan *frameSlot, depth)

	// Диспетчер: выдаёт слоты по порядку, семафор ограничивает число
	// кадров в полёте
	g.Go(func() error {
		defer close(slots)
		for i := 0; i < total; i++ {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			slot := &frameSlot{index: i, ch: make(chan frameOut, 1)}
			select {
			case slots <- slot:
			case <-gctx.Done():
				sem.Release(1)
				return gctx.Err()
			}
			g.Go(func() error {
				defer sem.Release(1)
				t := float64(slot.index) / fps
				img := p.comp.RenderFrameAt(project, t)
				slot.ch <- frameOut{img: img}
				return nil
			})
		}
		return nil
	})

	sampleRate := settings.Audio.SampleRate
	channels := settings.Audio.Channels
	frames := 0
	encodeErr := func() error {
		for slot := range slots {
			var out frameOut
			select {
			case out = <-slot.ch:
			case <-ctx.Done():
				return ctx.Err()
			}
			if out.err != nil {
				return out.err
			}
			img := out.img
			if needScale {
				img = Upscale(img, outW, outH, settings.Upscaling)
			}
			if err := p.enc.WriteFrame(img); err != nil {
				return fmt.Errorf("кадр %d: %w", slot.index, err)
			}
			if p.mixer != nil && sampleRate > 0 && channels > 0 {
				// Границы аудиоокна считаем от абсолютных номеров
				// сэмплов, иначе накапливается дрейф
				a0 := int64(math.Round(float64(slot.index) * float64(sampleRate) / fps))
				a1 := int64(math.Round(float64(slot.index+1) * float64(sampleRate) / fps))
				if a1 > a0 {
					pcm := p.mixer.MixWindow(project, float64(a0)/float64(sampleRate), float64(a1-a0)/float64(sampleRate))
					if err := p.enc.WriteAudio(pcm); err != nil {
						return fmt.Errorf("аудио кадра %d: %w", slot.index, err)
					}
				}
			}
			frames++
			job.emit(ctx, Progress{Frame: frames, Total: total, State: StateRendering})
			// Кооперативная отмена на границе кадра
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		return nil
	}()

	if encodeErr != nil {
		// Останавливаем диспетчер, иначе он застрянет на полном канале слотов
		job.cancel()
	}
	waitErr := g.Wait()
	if encodeErr == nil {
		encodeErr = waitErr
	}
	if encodeErr != nil {
		finish(frames, encodeErr)
		return
	}

	job.setState(StateEncoding)
	job.emit(ctx, Progress{Frame: frames, Total: total, State: StateEncoding})
	if err := p.enc.Close(); err != nil {
		finish(frames, fmt.Errorf("финализация: %w", err))
		return
	}
	finish(frames, nil)
}

// ExportAudio синхронно сводит звуковую дорожку проекта в отдельный файл.
// Формат определяется расширением выходного пути.
func (p *Pipeline) ExportAudio(ctx context.Context, project *timeline.Project, settings config.AudioExportSettings, outputPath string) error {
	if p.mixer == nil {
		return fmt.Errorf("микшер не настроен")
	}
	duration := project.Duration()
	if duration <= 0 {
		return ErrEmptyTimeline
	}
	if settings.Bitrate <= 0 {
		settings.Bitrate = 192
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-f", "s16le",
		"-ar", strconv.Itoa(settings.SampleRate),
		"-ac", strconv.Itoa(settings.Channels),
		"-i", "-",
		"-b:a", fmt.Sprintf("%dk", settings.Bitrate),
		outputPath,
	)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	const window = 0.5
	for t := 0.0; t < duration; t += window {
		if err := ctx.Err(); err != nil {
			stdin.Close()
			cmd.Process.Kill()
			cmd.Wait()
			return err
		}
		d := window
		if t+d > duration {
			d = duration - t
		}
		pcm := p.mixer.MixWindow(project, t, d)
		buf := make([]byte, len(pcm)*2)
		for i, s := range pcm {
			buf[2*i] = byte(s)
			buf[2*i+1] = byte(uint16(s) >> 8)
		}
		if _, err := stdin.Write(buf); err != nil {
			cmd.Wait()
			return fmt.Errorf("запись PCM: %w", err)
		}
	}
	stdin.Close()
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w", err)
	}
	return nil
}

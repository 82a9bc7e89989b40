package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/clipforge/internal/audio"
	"github.com/ivlev/clipforge/internal/config"
	"github.com/ivlev/clipforge/internal/edit"
	"github.com/ivlev/clipforge/internal/export"
	"github.com/ivlev/clipforge/internal/renderer"
	"github.com/ivlev/clipforge/internal/store"
	"github.com/ivlev/clipforge/internal/system"
	"github.com/ivlev/clipforge/internal/timeline"
)

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	projectPtr := flag.String("project", "", "Путь к файлу проекта (JSON)")
	outputPtr := flag.String("output", "", "Путь к результату (если пусто, генерируется автоматически в output/)")
	framePtr := flag.Float64("frame", -1, "Отрендерить один кадр в PNG на указанной секунде вместо экспорта")
	autoFramePtr := flag.String("autoframe", "", "Сгенерировать автокадрирование для клипа с указанным id и сохранить проект")
	audioOnlyPtr := flag.Bool("audio-only", false, "Экспортировать только звуковую дорожку")
	presetPtr := flag.String("preset", "", "Пресет формата: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	presetsFilePtr := flag.String("presets-file", "", "YAML-файл с пользовательскими пресетами экспорта")
	fpsPtr := flag.Float64("fps", 0, "Частота кадров экспорта (0 - из проекта)")
	widthPtr := flag.Int("width", 0, "Ширина экспорта (0 - из проекта)")
	heightPtr := flag.Int("height", 0, "Высота экспорта (0 - из проекта)")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51)")
	dryRunPtr := flag.Bool("dry-run", false, "Прогнать пайплайн без кодирования (замер скорости)")
	dbPtr := flag.String("db", "", "Путь к базе автосохранений (sqlite)")
	listPtr := flag.Bool("list", false, "Показать сохранённые проекты и выйти")
	savePtr := flag.Bool("save", false, "Сохранить проект в базу автосохранений")
	loadPtr := flag.String("load", "", "Загрузить проект из базы по id вместо файла")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var st *store.Store
	if *dbPtr != "" {
		var err error
		st, err = store.Open(*dbPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка открытия базы: %v", err)
		}
		defer st.Close()
	}

	if *listPtr {
		if st == nil {
			log.Fatalf("[-] Для -list нужен флаг -db")
		}
		infos, err := st.List(ctx)
		if err != nil {
			log.Fatalf("[-] Ошибка списка проектов: %v", err)
		}
		for _, info := range infos {
			fmt.Printf("%s  %-30s  %s\n", info.ID, info.Name, info.ModifiedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return
	}

	project := loadProject(ctx, st, *projectPtr, *loadPtr)

	if *savePtr {
		if st == nil {
			log.Fatalf("[-] Для -save нужен флаг -db")
		}
		if err := st.Save(ctx, project); err != nil {
			log.Fatalf("[-] Ошибка сохранения: %v", err)
		}
		fmt.Printf("[*] Проект сохранён: %s\n", project.ID)
	}

	settings := buildSettings(project, *presetPtr, *presetsFilePtr, *fpsPtr, *widthPtr, *heightPtr, *qualityPtr)

	sceneCtx := renderer.NewSceneContext()
	defer sceneCtx.Sources.Close()
	comp := renderer.NewCompositor(sceneCtx)

	// Один кадр: рендерим и выходим
	if *framePtr >= 0 {
		renderSingleFrame(comp, project, *framePtr, *outputPtr)
		return
	}

	if *autoFramePtr != "" {
		autoFrameClip(ctx, sceneCtx, st, project, *autoFramePtr, *projectPtr, *outputPtr)
		return
	}

	mixer := audio.NewMixer(settings.Audio.SampleRate, settings.Audio.Channels)
	defer mixer.Close()
	for i := range project.MediaLibrary {
		item := &project.MediaLibrary[i]
		if item.IsPlaceholder || item.Path == "" {
			continue
		}
		if item.Type != timeline.MediaAudio && item.Type != timeline.MediaVideo {
			continue
		}
		// Проекты без метаданных дополняем длительностью через ffprobe
		if item.Duration <= 0 {
			if d, err := system.GetAudioDuration(item.Path); err == nil {
				item.Duration = d
				fmt.Printf("[*] Длительность %s: %.2fs\n", item.Name, d)
			}
		}
		mixer.Register(item.ID, audio.NewFileSource(item.Path))
	}

	output := *outputPtr
	if output == "" {
		os.MkdirAll("output", 0755)
		cleanName := strings.ReplaceAll(project.Name, " ", "_")
		if cleanName == "" {
			cleanName = "project"
		}
		ext := settings.Format
		if *audioOnlyPtr {
			ext = "m4a"
		}
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		output = filepath.Join("output", fmt.Sprintf("%s_%s.%s", cleanName, timestamp, ext))
	}

	if *audioOnlyPtr {
		pipeline := export.NewPipeline(comp, mixer, nil)
		if err := pipeline.ExportAudio(ctx, project, settings.Audio, output); err != nil {
			log.Fatalf("[-] Ошибка экспорта аудио: %v", err)
		}
		fmt.Printf("[+++] Успех! Результат: %s\n", output)
		return
	}

	var enc export.Encoder
	if *dryRunPtr {
		enc = &export.NullEncoder{}
	} else {
		if codec, _ := system.GetBestH264Encoder(); settings.Codec == "" && codec != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", codec)
		}
		enc = export.NewFFmpegEncoder(output)
	}

	fmt.Println("--- [CLIPFORGE EXPORT] ---")
	fmt.Printf("[*] Проект: %s | Дорожек: %d | Длительность: %.2fs\n",
		project.Name, len(project.Timeline.Tracks), project.Duration())
	fmt.Printf("[*] Разрешение: %dx%d @ %.4g FPS\n", exportWidth(project, settings), exportHeight(project, settings), settings.FrameRate)
	fmt.Println("--------------------------")

	startTime := time.Now()
	pipeline := export.NewPipeline(comp, mixer, enc)
	job, err := pipeline.Export(ctx, project, settings)
	if err != nil {
		log.Fatalf("[-] Ошибка запуска экспорта: %v", err)
	}

	lastPercent := -1
	for p := range job.Progress() {
		percent := p.Frame * 100 / p.Total
		if percent != lastPercent {
			fmt.Printf("[>] Кадры: %d/%d (%d%%)\n", p.Frame, p.Total, percent)
			lastPercent = percent
		}
	}

	res := job.Wait()
	switch res.State {
	case export.StateCompleted:
		fps := float64(res.Frames) / time.Since(startTime).Seconds()
		fmt.Printf("[*] Кадров: %d | Время: %.2fs | Скорость: %.2f fps\n", res.Frames, res.Elapsed.Seconds(), fps)
		if *dryRunPtr {
			fmt.Println("[+++] Прогон завершён (без кодирования)")
		} else {
			fmt.Printf("[+++] Успех! Результат: %s\n", output)
		}
	case export.StateCancelled:
		fmt.Println("[!] Экспорт отменён")
	default:
		log.Fatalf("[-] Ошибка экспорта: %v", res.Err)
	}
}

func loadProject(ctx context.Context, st *store.Store, path, loadID string) *timeline.Project {
	if loadID != "" {
		if st == nil {
			log.Fatalf("[-] Для -load нужен флаг -db")
		}
		p, err := st.Load(ctx, loadID)
		if err != nil {
			log.Fatalf("[-] Ошибка загрузки из базы: %v", err)
		}
		fmt.Printf("[*] Проект загружен из базы: %s\n", p.Name)
		return p
	}
	if path == "" {
		log.Fatalf("[-] Укажите -project или -load")
	}
	p, err := timeline.Load(path)
	if err != nil {
		log.Fatalf("[-] Ошибка чтения проекта: %v", err)
	}
	return p
}

func buildSettings(project *timeline.Project, preset, presetsFile string, fps float64, width, height, quality int) config.ExportSettings {
	settings := config.ExportSettings{}.Default()

	if presetsFile != "" && preset != "" {
		pf, err := config.ReadPresets(presetsFile)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения пресетов: %v", err)
		}
		s, err := pf.FindPreset(preset)
		if err != nil {
			log.Fatalf("[-] %v", err)
		}
		settings = s.Default()
	} else if preset != "" {
		s, ok := config.BuiltinPreset(preset)
		if !ok {
			log.Fatalf("[-] Неизвестный пресет: %s", preset)
		}
		settings = s.Default()
	}

	if fps > 0 {
		settings.FrameRate = fps
	} else if settings.FrameRate <= 0 {
		settings.FrameRate = project.Settings.FrameRate
	}
	if width > 0 {
		settings.Width = width
	}
	if height > 0 {
		settings.Height = height
	}
	if quality > 0 {
		settings.Quality = quality
	}
	return settings
}

func exportWidth(p *timeline.Project, s config.ExportSettings) int {
	if s.Width > 0 {
		return s.Width
	}
	return p.Settings.Width
}

func exportHeight(p *timeline.Project, s config.ExportSettings) int {
	if s.Height > 0 {
		return s.Height
	}
	return p.Settings.Height
}

func autoFrameClip(ctx context.Context, sceneCtx *renderer.SceneContext, st *store.Store, project *timeline.Project, clipID, projectPath, output string) {
	clip, _ := project.ClipByID(clipID)
	if clip == nil {
		log.Fatalf("[-] Клип не найден: %s", clipID)
	}
	if clip.Media == nil {
		log.Fatalf("[-] Автокадрирование работает только с медиаклипами")
	}
	item := project.MediaByID(clip.Media.MediaID)
	if item == nil {
		log.Fatalf("[-] Медиа не найдено: %s", clip.Media.MediaID)
	}
	src, err := sceneCtx.Sources.Resolve(item)
	if err != nil {
		log.Fatalf("[-] Ошибка открытия медиа: %v", err)
	}
	content, err := src.FrameAt(clip.Media.InPoint)
	if err != nil {
		log.Fatalf("[-] Ошибка чтения кадра: %v", err)
	}

	eng := edit.NewEngine(project)
	if err := eng.AutoFrameClip(clipID, content); err != nil {
		log.Fatalf("[-] Ошибка автокадрирования: %v", err)
	}

	if output == "" {
		output = projectPath
	}
	if output != "" {
		if err := timeline.Save(eng.Project(), output); err != nil {
			log.Fatalf("[-] Ошибка сохранения проекта: %v", err)
		}
		fmt.Printf("[+++] Камера сгенерирована, проект сохранён: %s\n", output)
	}
	if st != nil {
		if err := st.Save(ctx, eng.Project()); err != nil {
			log.Fatalf("[-] Ошибка сохранения в базу: %v", err)
		}
	}
}

func renderSingleFrame(comp *renderer.Compositor, project *timeline.Project, t float64, output string) {
	if output == "" {
		os.MkdirAll("output", 0755)
		output = filepath.Join("output", fmt.Sprintf("frame_%.3f.png", t))
	}
	img := comp.RenderFrameAt(project, t)
	f, err := os.Create(output)
	if err != nil {
		log.Fatalf("[-] Ошибка создания файла: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("[-] Ошибка записи PNG: %v", err)
	}
	fmt.Printf("[+++] Кадр сохранён: %s\n", output)
}

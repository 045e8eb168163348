// Package app 提供演示应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置与设置、
// 创建场景管理器和发光演示场景。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/glow/internal/shaders"
	"github.com/decker502/glow/pkg/config"
	"github.com/decker502/glow/pkg/embedded"
	"github.com/decker502/glow/pkg/game"
	"github.com/decker502/glow/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名
const AppName = "glow_outline_demo"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径，为空时使用嵌入的 data/glow.yaml
	ConfigPath string
	// Watch 监视外部配置文件并热重载（仅 ConfigPath 非空时有效）
	Watch bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	verbose      bool
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	glowConfig, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Loaded %d objects", len(glowConfig.Objects))

	var watcher *config.Watcher
	if cfg.Watch && cfg.ConfigPath != "" {
		watcher, err = config.NewWatcher(cfg.ConfigPath)
		if err != nil {
			// 热重载不可用不影响运行
			log.Printf("[App] Config watcher disabled: %v", err)
			watcher = nil
		}
	}

	settings := game.OpenSettingsManager(AppName)
	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	scene, err := scenes.NewGlowScene(scenes.SceneOptions{
		Config:   glowConfig,
		Settings: settings,
		Shaders:  shaders.NewLibrary(),
		Watcher:  watcher,
	})
	if err != nil {
		if watcher != nil {
			watcher.Close()
		}
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// loadConfig 读取外部配置文件，未指定时读取嵌入配置
func loadConfig(path string) (*config.GlowConfig, error) {
	if path != "" {
		c, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("配置加载失败: %w", err)
		}
		return c, nil
	}
	data, err := embedded.ReadFile(config.DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("嵌入配置读取失败: %w", err)
	}
	c, err := config.ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("嵌入配置解析失败: %w", err)
	}
	return c, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 程序退出前保存设置并释放场景
func (a *App) Shutdown() {
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Settings were not saved")
	}
	a.sceneManager.SwitchTo(nil)
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

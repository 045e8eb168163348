// Package scenes 提供发光演示场景
package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/glow/internal/shaders"
	"github.com/decker502/glow/pkg/components"
	"github.com/decker502/glow/pkg/config"
	"github.com/decker502/glow/pkg/ecs"
	"github.com/decker502/glow/pkg/entities"
	"github.com/decker502/glow/pkg/game"
	"github.com/decker502/glow/pkg/glow"
	"github.com/decker502/glow/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// intensityStep 每次按键调整的强度
const intensityStep = 0.5

// GlowScene 发光描边演示场景
//
// 场景先绘制到离屏的相机图像，GlowRenderSystem 在其上执行命令序列，
// 最后整体绘制到屏幕。
type GlowScene struct {
	cfg      *config.GlowConfig
	settings *game.SettingsManager
	watcher  *config.Watcher

	entityManager *ecs.EntityManager
	coordinator   *glow.Coordinator
	objects       []ecs.EntityID

	hoverSystem      *systems.HoverSystem
	glowSystem       *systems.GlowSystem
	renderSystem     *systems.RenderSystem
	glowRenderSystem *systems.GlowRenderSystem

	cameraImage *ebiten.Image
	background  color.Color
}

// SceneOptions 场景依赖
type SceneOptions struct {
	Config   *config.GlowConfig
	Settings *game.SettingsManager // 为 nil 时使用仅内存设置
	Shaders  *shaders.Library
	Watcher  *config.Watcher     // 可选：配置热重载
	Pointer  systems.PointerFunc // 可选：测试注入指针
}

// NewGlowScene 创建演示场景
func NewGlowScene(opts SceneOptions) (*GlowScene, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if opts.Settings == nil {
		opts.Settings, _ = game.NewSettingsManager(nil)
	}
	if opts.Shaders == nil {
		opts.Shaders = shaders.NewLibrary()
	}

	// 已保存的设置优先；从未保存时以配置文件为准
	if !opts.Settings.HasStored() {
		opts.Settings.SetIntensity(opts.Config.Effect.Intensity)
		opts.Settings.SetFadeRate(opts.Config.Effect.FadeRate)
	}
	params := opts.Config.Parameters()
	params.Intensity = opts.Settings.GetSettings().Intensity

	camera := glow.NewCamera("Main Camera")
	coordinator, err := glow.NewCoordinator(camera, opts.Shaders, params)
	if err != nil {
		return nil, fmt.Errorf("glow coordinator: %w", err)
	}

	em := ecs.NewEntityManager()
	s := &GlowScene{
		cfg:              opts.Config,
		settings:         opts.Settings,
		watcher:          opts.Watcher,
		entityManager:    em,
		coordinator:      coordinator,
		hoverSystem:      systems.NewHoverSystem(em, opts.Pointer),
		glowSystem:       systems.NewGlowSystem(em, coordinator),
		renderSystem:     systems.NewRenderSystem(em),
		glowRenderSystem: systems.NewGlowRenderSystem(camera, opts.Shaders, coordinator),
	}
	if err := s.applyConfig(opts.Config); err != nil {
		coordinator.Close()
		return nil, err
	}
	return s, nil
}

// applyConfig 应用配置：背景、效果参数，并重新创建全部物体
func (s *GlowScene) applyConfig(cfg *config.GlowConfig) error {
	bg, err := config.ParseColor(cfg.Scene.Background)
	if err != nil {
		return fmt.Errorf("scene background: %w", err)
	}
	s.cfg = cfg
	s.background = bg

	params := cfg.Parameters()
	params.Intensity = s.settings.GetSettings().Intensity
	s.coordinator.SetParams(params)

	return s.spawnObjects()
}

// spawnObjects 销毁现有物体并按配置重新创建
func (s *GlowScene) spawnObjects() error {
	for _, id := range s.objects {
		// 销毁即注销，不经过渐出
		if e := s.GlowEntity(id); e != nil {
			s.coordinator.Deregister(e)
		}
		s.entityManager.DestroyEntity(id)
	}
	s.objects = s.objects[:0]
	s.entityManager.RemoveMarkedEntities()

	s.cfg.ApplyLayout()
	st := s.settings.GetSettings()
	opts := entities.ObjectOptions{ForceFade: st.FadeEnabled, FadeRate: st.FadeRate}
	for _, obj := range s.cfg.Objects {
		id, err := entities.NewGlowObject(s.entityManager, s.coordinator, obj, opts)
		if err != nil {
			return err
		}
		s.objects = append(s.objects, id)
	}
	log.Printf("[GlowScene] Spawned %d objects (fade=%v)", len(s.objects), st.FadeEnabled)
	return nil
}

// Update 更新场景
func (s *GlowScene) Update(deltaTime float64) {
	s.handleInput()

	if s.watcher != nil {
		if cfg := s.watcher.Poll(); cfg != nil {
			s.reload(cfg)
		}
	}

	s.hoverSystem.Update()
	s.glowSystem.Update(deltaTime)
}

// reload 应用热重载的配置
// 配置文件中的数值写入设置，与按键调整保持一致
func (s *GlowScene) reload(cfg *config.GlowConfig) {
	s.settings.SetIntensity(cfg.Effect.Intensity)
	s.settings.SetFadeRate(cfg.Effect.FadeRate)
	if err := s.applyConfig(cfg); err != nil {
		log.Printf("[GlowScene] Reload failed: %v", err)
	}
}

func (s *GlowScene) handleInput() {
	for _, key := range []ebiten.Key{
		ebiten.KeyEqual, ebiten.KeyNumpadAdd,
		ebiten.KeyMinus, ebiten.KeyNumpadSubtract,
		ebiten.KeyF, ebiten.KeyS, ebiten.KeyD,
	} {
		if inpututil.IsKeyJustPressed(key) {
			s.HandleKey(key)
		}
	}
}

// HandleKey 处理单个按键
//   - + / -: 调整强度（实时生效，不重建命令序列）
//   - F: 切换渐变模式并重新创建物体
//   - S: 保存设置
//   - D: 打印当前命令序列
func (s *GlowScene) HandleKey(key ebiten.Key) {
	switch key {
	case ebiten.KeyEqual, ebiten.KeyNumpadAdd:
		s.setIntensity(s.coordinator.Intensity() + intensityStep)
	case ebiten.KeyMinus, ebiten.KeyNumpadSubtract:
		s.setIntensity(s.coordinator.Intensity() - intensityStep)
	case ebiten.KeyF:
		st := s.settings.GetSettings()
		s.settings.SetFadeEnabled(!st.FadeEnabled)
		if err := s.spawnObjects(); err != nil {
			log.Printf("[GlowScene] Respawn failed: %v", err)
		}
	case ebiten.KeyS:
		if err := s.settings.Save(); err != nil {
			log.Printf("[GlowScene] Save settings failed: %v", err)
		}
	case ebiten.KeyD:
		seq := s.coordinator.Commands()
		log.Printf("[GlowScene] Command sequence (%d commands, %d rebuilds):\n%s",
			len(seq), s.coordinator.Builder().RebuildCount(), seq)
	}
}

func (s *GlowScene) setIntensity(v float64) {
	s.coordinator.SetIntensity(v)
	s.settings.SetIntensity(s.coordinator.Intensity())
}

// Draw 绘制场景
func (s *GlowScene) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if s.cameraImage == nil || s.cameraImage.Bounds().Size() != b.Size() {
		if s.cameraImage != nil {
			s.cameraImage.Deallocate()
		}
		s.cameraImage = ebiten.NewImage(b.Dx(), b.Dy())
	}

	s.cameraImage.Fill(s.background)
	s.renderSystem.Draw(s.cameraImage)
	s.glowRenderSystem.Draw(s.cameraImage)
	screen.DrawImage(s.cameraImage, nil)

	ebitenutil.DebugPrintAt(screen, s.statusText(), 10, 10)
}

func (s *GlowScene) statusText() string {
	st := s.settings.GetSettings()
	live, idle, _ := s.glowRenderSystem.PoolStats()
	return fmt.Sprintf("glowing: %d  intensity: %.1f  fade: %v  commands: %d  targets: %d/%d\n"+
		"[+/-] intensity  [F] fade  [S] save  [D] dump",
		s.coordinator.Builder().Len(), s.coordinator.Intensity(), st.FadeEnabled,
		len(s.coordinator.Commands()), live, idle)
}

// SaveOnExit 实现 game.Saveable
func (s *GlowScene) SaveOnExit() bool {
	if err := s.settings.Save(); err != nil {
		log.Printf("[GlowScene] Save on exit failed: %v", err)
		return false
	}
	return true
}

// Close 实现 game.Closable：解除相机绑定并停止配置监视
func (s *GlowScene) Close() {
	s.coordinator.Close()
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			log.Printf("[GlowScene] Close watcher: %v", err)
		}
		s.watcher = nil
	}
}

// Coordinator 返回场景的发光协调器
func (s *GlowScene) Coordinator() *glow.Coordinator {
	return s.coordinator
}

// Objects 返回场景中的物体实体
func (s *GlowScene) Objects() []ecs.EntityID {
	return s.objects
}

// GlowEntity 返回物体对应的发光实体
func (s *GlowScene) GlowEntity(id ecs.EntityID) *glow.Entity {
	glowComp, ok := ecs.GetComponent[*components.GlowComponent](s.entityManager, id)
	if !ok {
		return nil
	}
	return glowComp.Entity
}

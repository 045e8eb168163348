package game

import (
	"fmt"
	"log"

	"github.com/decker502/glow/pkg/glow"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GlowSettings 用户设置
// 覆盖配置文件中的效果参数，跨启动保留
type GlowSettings struct {
	Intensity   float64 `yaml:"intensity"`   // 发光强度 0 ~ 10
	FadeRate    float64 `yaml:"fadeRate"`    // 渐变速率 0.1 ~ 99
	FadeEnabled bool    `yaml:"fadeEnabled"` // 新建物体是否使用渐变

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GlowSettings {
	return &GlowSettings{
		Intensity:   glow.DefaultIntensity,
		FadeRate:    glow.DefaultFadeRate,
		FadeEnabled: false,
		Fullscreen:  false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GlowSettings  // 当前设置
	stored       bool           // 设置来自存储（曾经保存过）
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "glow"
)

// OpenSettingsManager 打开 appName 对应的存储并加载设置
// 存储不可用时退化为仅内存模式
func OpenSettingsManager(appName string) *SettingsManager {
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: storage unavailable: %v (memory only)", err)
		gdataManager = nil
	}
	sm, _ := NewSettingsManager(gdataManager)
	return sm
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 始终为 nil，加载失败只记录日志
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置。
// 超出范围的数值被限制到合法区间。
func (sm *SettingsManager) Load() error {
	sm.stored = false
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.Intensity = glow.ClampIntensity(loaded.Intensity)
	loaded.FadeRate = glow.ClampFadeRate(loaded.FadeRate)

	sm.settings = loaded
	sm.stored = true
	log.Printf("[SettingsManager] Settings loaded (intensity=%.2f, fadeRate=%.2f)", loaded.Intensity, loaded.FadeRate)
	return nil
}

// Save 保存设置到 gdata
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.stored = true
	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// IsPersistent 是否能持久化
func (sm *SettingsManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// HasStored 当前设置是否来自存储
// 为 false 时调用方可用配置文件的数值初始化设置
func (sm *SettingsManager) HasStored() bool {
	return sm.stored
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GlowSettings {
	return sm.settings
}

// SetIntensity 设置发光强度（限制在 0 ~ 10）
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetIntensity(v float64) {
	sm.settings.Intensity = glow.ClampIntensity(v)
}

// SetFadeRate 设置渐变速率（限制在 0.1 ~ 99）
func (sm *SettingsManager) SetFadeRate(v float64) {
	sm.settings.FadeRate = glow.ClampFadeRate(v)
}

// SetFadeEnabled 设置新建物体是否渐变
func (sm *SettingsManager) SetFadeEnabled(enabled bool) {
	sm.settings.FadeEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

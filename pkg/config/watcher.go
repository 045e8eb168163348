package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher 监视配置文件变化并重新加载
//
// fsnotify 的事件在后台 goroutine 中解析，结果通过 Changes 通道传递，
// 由游戏循环在 Update 中非阻塞读取。
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan *GlowConfig
	done    chan struct{}
}

// NewWatcher 开始监视配置文件
// 监视所在目录而不是文件本身，编辑器的"写临时文件再重命名"也能被捕获
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		changes: make(chan *GlowConfig, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	log.Printf("[ConfigWatcher] Watching %s", abs)
	return w, nil
}

// Changes 重新加载成功的配置
// 缓冲为 1：未及时读取时只保留最新一份
func (w *Watcher) Changes() <-chan *GlowConfig {
	return w.changes
}

// Poll 非阻塞读取最新配置，没有变化时返回 nil
func (w *Watcher) Poll() *GlowConfig {
	select {
	case cfg := <-w.changes:
		return cfg
	default:
		return nil
	}
}

// Close 停止监视
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			cfg, err := LoadConfig(w.path)
			if err != nil {
				// 保存中途的文件可能不完整，等待下一次事件
				log.Printf("[ConfigWatcher] Reload failed: %v", err)
				continue
			}
			w.publish(cfg)
			log.Printf("[ConfigWatcher] Reloaded %s", w.path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ConfigWatcher] Error: %v", err)
		}
	}
}

func (w *Watcher) publish(cfg *GlowConfig) {
	select {
	case <-w.changes:
	default:
	}
	w.changes <- cfg
}

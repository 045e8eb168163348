package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/glow/pkg/app"
	"github.com/decker502/glow/pkg/config"
	"github.com/decker502/glow/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "启用详细日志输出")
	configFlag  = flag.String("config", "", "配置文件路径（默认使用内置 data/glow.yaml）")
	watchFlag   = flag.Bool("watch", true, "配置文件修改后自动重新加载（需要 --config）")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Watch:      *watchFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(a)
	a.Shutdown()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "运行错误: %v\n", runErr)
		os.Exit(1)
	}
}

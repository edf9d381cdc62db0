package main

import (
	"flag"
	"log"

	"github.com/gonewx/bowling/pkg/app"
	"github.com/gonewx/bowling/pkg/config"
	"github.com/gonewx/bowling/pkg/embedded"
	"github.com/gonewx/bowling/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "启用详细日志输出")
	fullscreen = flag.Bool("fullscreen", false, "启动时直接进入全屏")
	play       = flag.Bool("play", false, "跳过主菜单，直接进入球道")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（调参配置）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Fullscreen: *fullscreen,
		SkipMenu:   *play,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Gonewx Bowling")

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}

	// 窗口正常关闭后给当前场景一次保存状态的机会
	if scene := gameApp.GetSceneManager().GetCurrentScene(); scene != nil {
		if saveable, ok := scene.(game.Saveable); ok {
			if !saveable.SaveOnExit() {
				log.Printf("[Main] Warning: scene state was not saved on exit")
			}
		}
	}
}

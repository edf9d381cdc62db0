// 校验保龄球调参文件的格式与取值范围
//
// 用法：
//
//	go run ./tools
//	go run ./tools path/to/bowling.yaml
package main

import (
	"fmt"
	"os"

	"github.com/gonewx/bowling/pkg/config"
)

func main() {
	path := "data/bowling.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.LoadBowlingConfig(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确: %s\n", path)
	fmt.Printf("✅ 投掷力度 %.0f ~ %.0f, 满蓄 %.1f 秒\n",
		cfg.Throw.MinForce, cfg.Throw.MaxForce, cfg.Throw.MaxChargeSeconds())
	fmt.Printf("✅ 静止阈值: 线速度 %.2f m/s, 角速度 %.2f rad/s\n",
		cfg.Settle.LinearThreshold, cfg.Settle.AngularThreshold)
	fmt.Printf("✅ 球道长 %.1f m, 头瓶位于 z=%.1f m\n", cfg.Lane.Length, cfg.Lane.HeadPinZ)

	// 十个瓶位都应落在球道范围内
	for i := 0; i < config.PinCount; i++ {
		x, _, z, ok := cfg.PinPosition(i)
		if !ok {
			fmt.Printf("❌ 瓶位 %d 越界\n", i)
			os.Exit(1)
		}
		if z >= cfg.Lane.Length || x < -cfg.Lane.Width/2 || x > cfg.Lane.Width/2 {
			fmt.Printf("❌ 瓶位 %d (x=%.2f z=%.2f) 超出球道\n", i, x, z)
			os.Exit(1)
		}
	}
	fmt.Printf("✅ %d 个瓶位全部落在球道内\n", config.PinCount)
}

package main

import (
	"fmt"
	"os"

	"valkyr/emu"
)

// version is overridden by the linker for release builds.
var version = "(devel)"

func main() {
	cli := parseArgs(os.Args[1:])

	cfg := emu.LoadConfigOrDefault()
	checkf(cfg.ApplyLogConfig(), "invalid configuration")

	switch cli.mode {
	case runMode:
		runMain(cli.Run, &cfg)
	case romInfosMode:
		romInfosMain(cli.RomInfos)
	case versionMode:
		fmt.Println("valkyr", version)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/koruview/core"
	"github.com/devblok/koruview/device"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	log.SetLevel(log.WarnLevel)

	cfg := core.DefaultConfiguration.Renderer
	cfg.Title = "korucli"
	cfg.ScreenWidth, cfg.ScreenHeight = 64, 64

	ctx, err := device.NewHiddenContext(cfg)
	if err != nil {
		log.WithError(err).Fatal("No OpenGL context")
	}
	info := ctx.Info()
	ctx.Destroy()

	if bytes, err := json.Marshal(info); err == nil {
		fmt.Printf("%s\n", bytes)
	} else {
		log.WithError(err).Fatal("Encoding failed")
	}
}

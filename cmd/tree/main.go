package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"tree-scene/internal/commands"
	"tree-scene/internal/config"
	"tree-scene/internal/debug"
	"tree-scene/internal/engineconfig"
	"tree-scene/internal/gesture"
	"tree-scene/internal/graphics"
	"tree-scene/internal/logger"
	"tree-scene/internal/scene"
	"tree-scene/internal/shake"
	"tree-scene/internal/state"
	"tree-scene/internal/terminal"
	"tree-scene/internal/theme"
)

func main() {
	log := logger.New()
	shared := state.New()
	cfg := config.Load()
	prefs, _ := engineconfig.Load()

	scn, err := scene.New(cfg, shared, log)
	if err != nil {
		// A broken theme or impossible placement falls back to the defaults
		// rather than refusing to start.
		log.Log("config rejected, using defaults: " + err.Error())
		cfg = config.Default()
		if scn, err = scene.New(cfg, shared, log); err != nil {
			panic(err)
		}
	}
	scn.GridVisible = prefs.GridVisible
	if prefs.CameraDistance > 0 {
		scn.CameraDistance = prefs.CameraDistance
	}

	detector := shake.New(shared)
	defer detector.Stop()

	// The recognizer samples on its own loop so a slow inference never blocks
	// a frame; cancel stops the loop and releases its stream at teardown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc := gesture.New(openRecognizer(cfg, log), shared, log)
	go proc.Run(ctx)

	dbg := debug.New()
	dbg.ShowFPS = prefs.ShowFPS
	dbg.ShowMemAlloc = prefs.ShowMemAlloc
	dbg.HUD = func() string {
		snow := ""
		if shared.Snow() {
			snow = "  snow"
		}
		return fmt.Sprintf("%s  %d elements%s  %s",
			shared.Mode(), scn.InstanceCount(), snow, shared.Status())
	}

	term := terminal.New(log, registerCommands(shared, scn, detector, dbg, &prefs, log))

	update := func() {
		term.Update()
		scn.Update(rl.GetFrameTime())
	}
	draw := func() {
		scn.Draw()
		term.Draw()
		dbg.Draw()
	}
	graphics.Run("tree scene", update, scn.Background, draw)
	scn.Unload()
}

// openRecognizer wires the configured replay script, or a stub that reports
// gesture control as unavailable (same degradation as a denied camera).
func openRecognizer(cfg config.Config, log *logger.Logger) gesture.Recognizer {
	if cfg.GestureReplay == "" {
		return gesture.Unavailable("no recognizer configured")
	}
	rec, err := gesture.OpenReplay(cfg.GestureReplay)
	if err != nil {
		log.Log(err.Error())
		return gesture.Unavailable(err.Error())
	}
	return rec
}

func registerCommands(shared *state.Shared, scn *scene.Scene, detector *shake.Detector, dbg *debug.Debug, prefs *engineconfig.EnginePrefs, log *logger.Logger) *commands.Registry {
	reg := commands.NewRegistry()

	reg.Register("form", "assemble the tree",
		flag.NewFlagSet("form", flag.ContinueOnError), func() error {
			shared.SetMode(state.Formed)
			return nil
		})
	reg.Register("chaos", "scatter the tree",
		flag.NewFlagSet("chaos", flag.ContinueOnError), func() error {
			shared.SetMode(state.Chaos)
			return nil
		})
	reg.Register("toggle", "flip between formed and chaos",
		flag.NewFlagSet("toggle", flag.ContinueOnError), func() error {
			if shared.Mode() == state.Formed {
				shared.SetMode(state.Chaos)
			} else {
				shared.SetMode(state.Formed)
			}
			return nil
		})
	reg.Register("reload", "reload config/tree.yaml and rebuild the scene",
		flag.NewFlagSet("reload", flag.ContinueOnError), func() error {
			if err := scn.Reconfigure(config.Load()); err != nil {
				return err
			}
			log.Logf("rebuilt: %d elements, theme %q", scn.InstanceCount(), scn.Config().Theme.Name)
			return nil
		})
	reg.Register("shake", "simulate a device shake (snow)",
		flag.NewFlagSet("shake", flag.ContinueOnError), func() error {
			detector.Trigger()
			return nil
		})

	themeFS := flag.NewFlagSet("theme", flag.ContinueOnError)
	themeName := themeFS.String("name", "", "built-in palette name")
	reg.Register("theme", "switch to a built-in palette", themeFS, func() error {
		t, ok := theme.Builtin(*themeName)
		if !ok {
			return fmt.Errorf("unknown theme %q (built-ins: %s)",
				*themeName, strings.Join(theme.BuiltinNames(), ", "))
		}
		cfg := scn.Config()
		cfg.Theme = t
		return scn.Reconfigure(cfg)
	})

	snowFS := flag.NewFlagSet("snow", flag.ContinueOnError)
	snowOn := snowFS.Bool("on", false, "hold snow on")
	snowOff := snowFS.Bool("off", false, "clear snow")
	reg.Register("snow", "force snow on or off (default: timed burst)", snowFS, func() error {
		switch {
		case *snowOn:
			detector.Set(true)
		case *snowOff:
			detector.Set(false)
		default:
			detector.Trigger()
		}
		*snowOn, *snowOff = false, false
		return nil
	})

	gridFS := flag.NewFlagSet("grid", flag.ContinueOnError)
	reg.Register("grid", "toggle the reference grid", gridFS, func() error {
		scn.GridVisible = !scn.GridVisible
		prefs.GridVisible = scn.GridVisible
		return engineconfig.Save(*prefs)
	})

	reg.Register("fps", "toggle the FPS counter",
		flag.NewFlagSet("fps", flag.ContinueOnError), func() error {
			dbg.ShowFPS = !dbg.ShowFPS
			prefs.ShowFPS = dbg.ShowFPS
			return engineconfig.Save(*prefs)
		})
	reg.Register("mem", "toggle the memory counter",
		flag.NewFlagSet("mem", flag.ContinueOnError), func() error {
			dbg.ShowMemAlloc = !dbg.ShowMemAlloc
			prefs.ShowMemAlloc = dbg.ShowMemAlloc
			return engineconfig.Save(*prefs)
		})

	reg.Register("status", "log mode, gesture status, snow, and diagnostics",
		flag.NewFlagSet("status", flag.ContinueOnError), func() error {
			log.Logf("mode=%s snow=%v elements=%d overlaps=%d status=%q",
				shared.Mode(), shared.Snow(), scn.InstanceCount(), scn.Overlaps(), shared.Status())
			return nil
		})

	return reg
}

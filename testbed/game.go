package testbed

import (
	"os"

	"github.com/swift2d/engine/engine"
	"github.com/swift2d/engine/engine/core"
	"github.com/swift2d/engine/engine/math"
	"github.com/swift2d/engine/engine/world"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	world *world.World
}

func NewTestGame() *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				Name:           "Swift Testbed",
				AssetDir:       "assets",
				SaveDir:        "data/saves",
				SettingsFile:   "data/settings.toml",
				TargetTickRate: 60,
				LogLevel:       core.DebugLevel,
			},
			State: &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize(e *engine.Engine) error {
	core.LogInfo("booting testbed...")

	state := g.State.(*gameState)

	w := world.NewWorld("testbed", math.Vec2u{X: 800, Y: 600}, e.Assets())
	w.SetSaveDir(g.ApplicationConfig.SaveDir)
	state.world = w

	if _, err := os.Stat(w.SavePath()); err == nil {
		if lerr := w.Load(); lerr != nil {
			core.LogWarn("starting from an empty world: %s", lerr.Error())
		}
	}

	// the proximity demo: spawns a chaser and a player, polls distance every
	// tick and flags itself done once they meet
	if !w.AddScript("proximity.lua") {
		core.LogWarn("proximity.lua not found in asset store")
	}

	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.world.Update(float32(deltaTime))
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	if state.world != nil {
		return state.world.Close()
	}
	return nil
}

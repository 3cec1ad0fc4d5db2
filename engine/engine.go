package engine

import (
	"fmt"
	"time"

	"github.com/swift2d/engine/engine/assets"
	"github.com/swift2d/engine/engine/core"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Engine drives the cooperative tick loop: one tick runs the game's update
// (and through it, every world's scheduler and script pass) to completion
// before control returns.
type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	assetManager *assets.Manager
	settings     *core.Settings
	clock        *core.Clock
	lastTime     float64
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}

	settings, err := core.LoadSettings(g.ApplicationConfig.SettingsFile)
	if err != nil {
		core.LogWarn(err.Error())
	}

	clock := core.NewClock()

	am, err := assets.NewManager(clock, settings)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        clock,
		assetManager: am,
		settings:     settings,
		isRunning:    true,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	core.SetLogLevel(e.gameInstance.ApplicationConfig.LogLevel)

	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_WORLD_CHANGED, e.onWorldChanged)

	if err := e.assetManager.Initialize(e.gameInstance.ApplicationConfig.AssetDir); err != nil {
		return err
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	rate := e.gameInstance.ApplicationConfig.TargetTickRate
	if rate == 0 {
		rate = 60
	}
	targetTickSeconds := 1.0 / float64(rate)

	for e.isRunning {
		e.clock.Update()

		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("Game update failed, shutting down.")
				e.isRunning = false
				break
			}
		}

		e.clock.Update()
		remainingSeconds := targetTickSeconds - (e.clock.Elapsed() - currentTime)
		if remainingSeconds > 0 {
			// give the rest of the tick budget back to the OS
			time.Sleep(time.Duration(remainingSeconds * float64(time.Second)))
		}

		e.lastTime = currentTime
	}

	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			return err
		}
	}
	if err := e.assetManager.Close(); err != nil {
		return err
	}
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	return nil
}

func (e *Engine) Assets() *assets.Manager {
	return e.assetManager
}

func (e *Engine) Settings() *core.Settings {
	return e.settings
}

func (e *Engine) Clock() *core.Clock {
	return e.clock
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
	}
}

func (e *Engine) onWorldChanged(context core.EventContext) {
	if name, ok := context.Data.(string); ok {
		core.LogDebug("world %q changed", name)
	}
}

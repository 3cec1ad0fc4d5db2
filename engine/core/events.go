package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// A world gained or lost a script, or was replaced wholesale.
	/* Context usage:
	 * name := context.Data.(string) // world name
	 */
	EVENT_CODE_WORLD_CHANGED SystemEventCode = 0x02

	// A script flagged itself done and was detached from its world.
	/* Context usage:
	 * file := context.Data.(string) // script file name
	 */
	EVENT_CODE_SCRIPT_DONE SystemEventCode = 0x03

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type FnOnEvent func(context EventContext)

type eventSystemState struct {
	registered map[SystemEventCode][]FnOnEvent
}

var onceEvent sync.Once
var isInitialized bool = false
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	if isInitialized {
		return false
	}
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[SystemEventCode][]FnOnEvent),
		}
	})
	isInitialized = true
	return true
}

func EventSystemShutdown() error {
	if eventState != nil {
		eventState.registered = make(map[SystemEventCode][]FnOnEvent)
	}
	isInitialized = false
	return nil
}

// Register to listen for when events are sent with the provided code.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

// Fires an event to listeners of the given code. Listeners run synchronously,
// in registration order, on the caller's goroutine; the engine core is
// single-threaded and ticks must complete before control returns.
func EventFire(context EventContext) bool {
	if !isInitialized {
		return false
	}
	listeners := eventState.registered[context.Type]
	if len(listeners) == 0 {
		return false
	}
	for _, onEvent := range listeners {
		onEvent(context)
	}
	return true
}

package core

// Action represents a semantic game action, abstracted from physical key presses.
// Key bindings are configurable, so the platform resolves keys to actions.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // bird_event, bird_2_event - flap
	ActionStart             // window_start_event - start a run from the menu or scoreboard
	ActionExit              // window_exit_event - save and quit
	ActionFullscreen        // window_fullscreen_event - toggle fullscreen
	ActionPause             // window_pause_event, window_pause_2_event - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionStart:
		return "Start"
	case ActionExit:
		return "Exit"
	case ActionFullscreen:
		return "Fullscreen"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

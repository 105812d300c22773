package phasetimer

// Controls describes which user controls are available in a state.
type Controls struct {
	ModeSelectionEnabled bool
	PrimaryLabel         string
	PrimaryEnabled       bool
	// PrimaryEmphasis marks the primary action as the pause action.
	PrimaryEmphasis bool
	ResetEnabled    bool
}

var controlsByState = map[State]Controls{
	StateInitial: {
		ModeSelectionEnabled: true,
		PrimaryLabel:         "Start",
		PrimaryEnabled:       true,
		ResetEnabled:         false,
	},
	StateRunning: {
		ModeSelectionEnabled: false,
		PrimaryLabel:         "Pause",
		PrimaryEnabled:       true,
		PrimaryEmphasis:      true,
		ResetEnabled:         true,
	},
	StatePaused: {
		ModeSelectionEnabled: false,
		PrimaryLabel:         "Resume",
		PrimaryEnabled:       true,
		ResetEnabled:         true,
	},
	StateFinished: {
		ModeSelectionEnabled: true,
		PrimaryLabel:         "Restart",
		PrimaryEnabled:       true,
		ResetEnabled:         true,
	},
}

// ControlsFor maps a state to its control capabilities.
// Unknown states get the Initial controls.
func ControlsFor(state State) Controls {
	if controls, ok := controlsByState[state]; ok {
		return controls
	}
	return controlsByState[StateInitial]
}

package input

import "sort"

// Action is a high-level intent for the running simulation.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionTogglePause
	ActionStepOnce
	ActionFaster
	ActionSlower
)

var bindings = map[string]Action{
	"q":      ActionQuit,
	"ctrl_c": ActionQuit,

	"space": ActionTogglePause,
	"p":     ActionTogglePause,

	"enter":       ActionStepOnce,
	"s":           ActionStepOnce,
	"arrow_right": ActionStepOnce,

	"+":        ActionFaster,
	"=":        ActionFaster,
	"arrow_up": ActionFaster,

	"-":          ActionSlower,
	"arrow_down": ActionSlower,
}

// MapToAction applies the bindings to a key code.
func MapToAction(code string) Action {
	if act, ok := bindings[code]; ok {
		return act
	}
	return ActionNone
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionQuit:
		return "Quit"
	case ActionTogglePause:
		return "Pause"
	case ActionStepOnce:
		return "Step"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	default:
		return "None"
	}
}

// BindingsByAction returns the current bindings grouped by action, with
// codes sorted so help text stays stable.
func BindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

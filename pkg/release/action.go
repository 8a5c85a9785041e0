package release

import (
	"fmt"

	"github.com/spf13/pflag"
)

var _ pflag.Value = (*Action)(nil)

// Action chosen for a release run
type Action string

// Release actions
const (
	ActionMakeRelease Action = "rel"
	ActionRegenerate  Action = "reg"
)

// Actions proposed to the operator
func Actions() []string {
	return []string{string(ActionMakeRelease), string(ActionRegenerate)}
}

// String representation of an action
func (a Action) String() string {
	return string(a)
}

// Set the action from a flag value
func (a *Action) Set(value string) error {
	switch Action(value) {
	case ActionMakeRelease, ActionRegenerate:
		*a = Action(value)
		return nil
	default:
		return fmt.Errorf("invalid release action %q: expected %q or %q", value, ActionMakeRelease, ActionRegenerate)
	}
}

// Type of the flag value
func (a *Action) Type() string {
	return "action"
}

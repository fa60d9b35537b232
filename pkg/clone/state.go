package clone

import (
	"github.com/intothevoid/mirrorclone/pkg/display"
	"github.com/intothevoid/mirrorclone/pkg/vision"
)

// Action is what a key press asks the loop to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionModeChanged
	ActionBackgroundChanged
)

// State is the current layout and background selection of a run.
type State struct {
	profile Profile
	mode    int
	bg      int
}

// NewState starts at the first mode and background of the profile.
func NewState(p Profile) *State {
	return &State{profile: p}
}

func (s *State) Mode() vision.Mode {
	return s.profile.Modes[s.mode]
}

func (s *State) Background() vision.Background {
	return s.profile.Backgrounds[s.bg]
}

// NextMode advances cyclically through the profile's modes.
func (s *State) NextMode() vision.Mode {
	s.mode = (s.mode + 1) % len(s.profile.Modes)
	return s.Mode()
}

// NextBackground advances cyclically through the profile's backgrounds.
func (s *State) NextBackground() vision.Background {
	s.bg = (s.bg + 1) % len(s.profile.Backgrounds)
	return s.Background()
}

// HandleKey applies a key press. Escape quits in every profile; M and B only
// work in interactive ones; every other key is ignored.
func (s *State) HandleKey(k display.Key) Action {
	switch k {
	case display.KeyEscape:
		return ActionQuit
	case 'm', 'M':
		if !s.profile.Interactive {
			return ActionNone
		}
		s.NextMode()
		return ActionModeChanged
	case 'b', 'B':
		if !s.profile.Interactive {
			return ActionNone
		}
		s.NextBackground()
		return ActionBackgroundChanged
	default:
		return ActionNone
	}
}

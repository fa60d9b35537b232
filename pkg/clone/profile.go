package clone

import (
	"github.com/intothevoid/mirrorclone/pkg/vision"
	"github.com/pkg/errors"
)

// Profile fixes which layouts and backgrounds a run offers and how much UI
// it shows. Basic and Enhanced are kept apart on purpose: the basic run
// always composites onto black and never draws an overlay.
type Profile struct {
	Name        string
	Title       string // window title
	Modes       []vision.Mode
	Backgrounds []vision.Background
	Interactive bool // M and B cycle modes and backgrounds
	Overlay     bool // draw labels, help and FPS on the display buffer
}

var (
	Basic = Profile{
		Name:        "basic",
		Title:       "Mirror Clone System",
		Modes:       []vision.Mode{vision.ModeMirror},
		Backgrounds: []vision.Background{vision.BackgroundBlack},
	}

	Enhanced = Profile{
		Name:        "enhanced",
		Title:       "Enhanced Mirror Clone System",
		Modes:       []vision.Mode{vision.ModeMirror, vision.ModeDouble, vision.ModeQuad},
		Backgrounds: []vision.Background{vision.BackgroundBlack, vision.BackgroundWhite, vision.BackgroundBlur},
		Interactive: true,
		Overlay:     true,
	}
)

// ProfileByName returns the profile called name ("basic" or "enhanced").
func ProfileByName(name string) (Profile, error) {
	switch name {
	case Basic.Name:
		return Basic, nil
	case Enhanced.Name:
		return Enhanced, nil
	default:
		return Profile{}, errors.Errorf("unknown profile %q, want %q or %q", name, Basic.Name, Enhanced.Name)
	}
}

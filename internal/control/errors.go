package control

import (
	"errors"

	"github.com/san-kum/orrery/internal/orbit"
)

var (
	// ErrInit marks any failure during one-time setup. The frame loop must not
	// start after it.
	ErrInit = errors.New("control: initialization failed")

	// ErrUnknownBody indicates a command that names a body the registry lacks.
	ErrUnknownBody = orbit.ErrUnknownBody

	// ErrUnknownCommand indicates a command type the state machine cannot apply.
	ErrUnknownCommand = errors.New("control: unknown command")
)

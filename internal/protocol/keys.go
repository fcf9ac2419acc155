package protocol

import (
	"fmt"

	"github.com/SeamusWaldron/puzzled"
)

// ColorFaces maps cube center colors to the face ids of the puzzle being
// driven.
type ColorFaces map[string]puzzled.Face

// DefaultColorFaces returns the standard color scheme: white up, green
// right, red front, yellow down, blue left, orange back.
func DefaultColorFaces() ColorFaces {
	return ColorFaces{
		"white":  'u',
		"green":  'r',
		"red":    'f',
		"yellow": 'd',
		"blue":   'l',
		"orange": 'b',
	}
}

// RotationKeys translates rotations into notation keys. A clockwise turn
// is the face letter; a counter-clockwise turn is '/' followed by it.
func RotationKeys(events []RotationEvent, colors ColorFaces) ([]puzzled.Key, error) {
	keys := make([]puzzled.Key, 0, 2*len(events))
	for _, ev := range events {
		face, ok := colors[ev.Color]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColor, ev.Color)
		}
		if !ev.Clockwise {
			keys = append(keys, '/')
		}
		keys = append(keys, puzzled.Key(face))
	}
	return keys, nil
}

// MessageKeys decodes a rotation message into notation keys. Other message
// types yield no keys.
func MessageKeys(msg *Message, colors ColorFaces) ([]puzzled.Key, error) {
	if msg.Type != MsgTypeRotation {
		return nil, nil
	}
	events, err := DecodeRotation(msg.Payload)
	if err != nil {
		return nil, err
	}
	return RotationKeys(events, colors)
}

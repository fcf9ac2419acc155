package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/puzzled"
)

// RotationEvent is a single face rotation reported by the cube.
type RotationEvent struct {
	FaceCode          byte   // Raw face+direction code (0x00-0x0B)
	CenterOrientation byte   // Center piece orientation
	Clockwise         bool   // Direction of rotation
	Color             string // Center color of the turned face
}

// BatteryEvent is a battery level notification.
type BatteryEvent struct {
	Level int // 0-100 percentage
}

// OrientationEvent is a cube orientation notification.
type OrientationEvent struct {
	X, Y, Z, W float64

	// Derived discrete orientation
	UpFace    puzzled.Face // Face pointing up
	FrontFace puzzled.Face // Face toward the solver
}

// Center colors indexed by face code / 2
var colorNames = map[byte]string{
	0: "blue",
	1: "green",
	2: "white",
	3: "yellow",
	4: "red",
	5: "orange",
}

// DecodeRotation decodes a rotation payload.
// Rotation payloads contain pairs of bytes: [face_dir] [center_orientation]
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	events := make([]RotationEvent, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		faceCode := payload[i]

		// Even codes are clockwise, odd codes counter-clockwise.
		colorName, ok := colorNames[faceCode/2]
		if !ok {
			return nil, fmt.Errorf("%w: face code 0x%02X", ErrUnknownColor, faceCode)
		}

		events = append(events, RotationEvent{
			FaceCode:          faceCode,
			CenterOrientation: payload[i+1],
			Clockwise:         faceCode%2 == 0,
			Color:             colorName,
		})
	}
	return events, nil
}

// DecodeBattery decodes a battery payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("battery payload too short")
	}
	return &BatteryEvent{Level: int(payload[0])}, nil
}

// DecodeOrientation decodes an orientation payload.
// Format: ASCII "x#y#z#w" where w may carry trailing non-numeric bytes.
func DecodeOrientation(payload []byte) (*OrientationEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("orientation payload must have 4 parts, got %d", len(parts))
	}
	parts[3] = leadingNumber(parts[3])

	var q [4]float64
	for i, name := range []string{"x", "y", "z", "w"} {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", name, err)
		}
		q[i] = v
	}

	event := &OrientationEvent{X: q[0], Y: q[1], Z: q[2], W: q[3]}
	event.UpFace, event.FrontFace = quaternionToFaces(q[0], q[1], q[2], q[3])
	return event, nil
}

func leadingNumber(s string) string {
	end := 0
	for i, r := range s {
		if (r == '-' && i == 0) || r == '.' || (r >= '0' && r <= '9') {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}

// quaternionToFaces returns the faces pointing up and toward the solver.
func quaternionToFaces(x, y, z, w float64) (up, front puzzled.Face) {
	// GoCube sends raw integer components.
	if mag := math.Sqrt(x*x + y*y + z*z + w*w); mag > 0 {
		x, y, z, w = x/mag, y/mag, z/mag, w/mag
	}

	// Rotate (0, 1, 0) and (0, 0, 1) by the quaternion.
	up = vectorToFace(2*(x*y-w*z), 1-2*(x*x+z*z), 2*(y*z+w*x))
	front = vectorToFace(2*(x*z+w*y), 2*(y*z-w*x), 1-2*(x*x+y*y))
	return up, front
}

func vectorToFace(x, y, z float64) puzzled.Face {
	ax, ay, az := math.Abs(x), math.Abs(y), math.Abs(z)
	switch {
	case ay >= ax && ay >= az:
		if y > 0 {
			return 'u'
		}
		return 'd'
	case az >= ax:
		if z > 0 {
			return 'f'
		}
		return 'b'
	case x > 0:
		return 'r'
	default:
		return 'l'
	}
}

package protocol

import (
	"testing"

	"github.com/SeamusWaldron/puzzled"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frame builds a valid notification frame.
func frame(msgType byte, payload ...byte) []byte {
	data := []byte{FramePrefix, byte(len(payload) + 4), msgType}
	data = append(data, payload...)
	var sum byte
	for _, b := range data {
		sum += b
	}
	return append(data, sum, FrameSuffix1, FrameSuffix2)
}

func TestParseMessage(t *testing.T) {
	msg, err := ParseMessage(frame(MsgTypeRotation, 0x04, 0x00))
	require.NoError(t, err)
	assert.Equal(t, MsgTypeRotation, msg.Type)
	assert.Equal(t, []byte{0x04, 0x00}, msg.Payload)

	msg, err = ParseMessage(frame(MsgTypeBattery, 87))
	require.NoError(t, err)
	battery, err := DecodeBattery(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, 87, battery.Level)
}

func TestParseMessageErrors(t *testing.T) {
	good := frame(MsgTypeRotation, 0x04, 0x00)

	badPrefix := append([]byte(nil), good...)
	badPrefix[0] = '#'

	badChecksum := append([]byte(nil), good...)
	badChecksum[5]++

	badSuffix := append([]byte(nil), good...)
	badSuffix[7] = 0

	tests := map[string]struct {
		data []byte
		want error
	}{
		"too short":  {[]byte{FramePrefix, 1}, ErrMessageTooShort},
		"prefix":     {badPrefix, ErrInvalidPrefix},
		"truncated":  {good[:6], ErrInvalidLength},
		"checksum":   {badChecksum, ErrInvalidChecksum},
		"suffix":     {badSuffix, ErrInvalidSuffix},
		"tiny frame": {[]byte{FramePrefix, 3, 0x01, 0x0D, 0x0A}, ErrMessageTooShort},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMessage(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildCommand(t *testing.T) {
	cmd := BuildCommand(CmdRequestBattery)
	assert.Equal(t, []byte{0x2A, 0x01, 0x32, 0x5D, 0x0D, 0x0A}, cmd)
}

func TestBuildCommandCodes(t *testing.T) {
	tests := []struct {
		code     byte
		checksum byte
	}{
		{CmdRequestBattery, 0x5D},
		{CmdRequestState, 0x5E},
		{CmdResetSolved, 0x60},
		{CmdDisableOrientation, 0x62},
		{CmdEnableOrientation, 0x63},
		{CmdFlashBacklight, 0x6C},
		{CmdCalibrateOrientation, 0x82},
	}
	for _, tt := range tests {
		cmd := BuildCommand(tt.code)
		assert.Equal(t, []byte{FramePrefix, 0x01, tt.code, tt.checksum, FrameSuffix1, FrameSuffix2}, cmd, "command %#x", tt.code)
	}
}

func TestDecodeRotation(t *testing.T) {
	events, err := DecodeRotation([]byte{0x04, 0x03, 0x09, 0x00})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "white", events[0].Color)
	assert.True(t, events[0].Clockwise)
	assert.Equal(t, byte(0x03), events[0].CenterOrientation)

	assert.Equal(t, "red", events[1].Color)
	assert.False(t, events[1].Clockwise)

	_, err = DecodeRotation([]byte{0x04})
	assert.Error(t, err)

	_, err = DecodeRotation([]byte{0x0C, 0x00})
	assert.ErrorIs(t, err, ErrUnknownColor)
}

func TestRotationKeys(t *testing.T) {
	// blue cw, green ccw, white cw, yellow ccw, red cw, orange ccw
	events, err := DecodeRotation([]byte{0x00, 0, 0x03, 0, 0x04, 0, 0x07, 0, 0x08, 0, 0x0B, 0})
	require.NoError(t, err)

	keys, err := RotationKeys(events, DefaultColorFaces())
	require.NoError(t, err)
	assert.Equal(t, []puzzled.Key{'l', '/', 'r', 'u', '/', 'd', 'f', '/', 'b'}, keys)

	_, err = RotationKeys(events, ColorFaces{"blue": 'l'})
	assert.ErrorIs(t, err, ErrUnknownColor)
}

func TestMessageKeysDriveSession(t *testing.T) {
	s := puzzled.New()

	for _, data := range [][]byte{
		frame(MsgTypeRotation, 0x02, 0x00), // green cw
		frame(MsgTypeBattery, 50),
		frame(MsgTypeRotation, 0x03, 0x00), // green ccw
	} {
		msg, err := ParseMessage(data)
		require.NoError(t, err)
		keys, err := MessageKeys(msg, DefaultColorFaces())
		require.NoError(t, err)
		for _, k := range keys {
			require.NoError(t, s.Input(k))
		}
	}

	assert.Equal(t, []string{"r", "/r"}, s.History())
	assert.True(t, s.Puzzle().Solved())
}

func TestDecodeOrientation(t *testing.T) {
	ev, err := DecodeOrientation([]byte("0#0#0#1\xb7"))
	require.NoError(t, err)
	assert.Equal(t, puzzled.Face('u'), ev.UpFace)
	assert.Equal(t, puzzled.Face('f'), ev.FrontFace)

	// Quarter turn about the vertical axis
	ev, err = DecodeOrientation([]byte("0#1000#0#1000"))
	require.NoError(t, err)
	assert.Equal(t, puzzled.Face('u'), ev.UpFace)
	assert.Equal(t, puzzled.Face('r'), ev.FrontFace)

	_, err = DecodeOrientation([]byte("1#2#3"))
	assert.Error(t, err)
	_, err = DecodeOrientation([]byte("a#0#0#1"))
	assert.Error(t, err)
}

func TestMessageTypeName(t *testing.T) {
	assert.Equal(t, "rotation", MessageTypeName(MsgTypeRotation))
	assert.Equal(t, "unknown_0x7F", MessageTypeName(0x7F))
}

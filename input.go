package puzzled

import (
	"fmt"
	"strings"
)

// Key is one input event: a notation character or one of the dedicated
// editing keys.
type Key rune

// Dedicated keys. Raw device events map onto these and the notation alphabet.
// They lie outside the rune range so no typed character can produce them.
const (
	KeyUndo   Key = -1 // Backspace
	KeyRepeat Key = -2 // Enter
)

func (k Key) String() string {
	switch k {
	case KeyUndo:
		return "undo"
	case KeyRepeat:
		return "repeat"
	}
	return string(rune(k))
}

// InputState is the state of the Assembler.
type InputState int

const (
	Idle          InputState = iota // No group open
	BuildingGroup                   // At least one bracket open
)

func (s InputState) String() string {
	switch s {
	case Idle:
		return "idle"
	case BuildingGroup:
		return "building_group"
	default:
		return "unknown"
	}
}

// ActionKind tells the owner of an Assembler what a key press requires.
type ActionKind int

const (
	ActionNone   ActionKind = iota // Pure edit, nothing to execute
	ActionApply                    // Execute Token and push it
	ActionAmend                    // Append the Token digits to the last entry and re-apply it
	ActionUndo                     // Pop the last entry and execute its inverse
	ActionRepeat                   // Re-execute the last entry and push it again
)

// Action is the result of feeding one key to the Assembler.
type Action struct {
	Kind  ActionKind
	Token string
}

// Assembler collects input one key at a time into complete tokens.
// While Idle, face letters complete immediately. Brackets open frames that
// complete when the outermost one closes; the whole bracketed text then
// becomes a single token.
type Assembler struct {
	parser *Parser
	frames []string
	negate bool
}

// NewAssembler creates an Assembler that validates against parser.
func NewAssembler(parser *Parser) *Assembler {
	return &Assembler{parser: parser}
}

// State returns Idle or BuildingGroup.
func (a *Assembler) State() InputState {
	if len(a.frames) > 0 {
		return BuildingGroup
	}
	return Idle
}

// Depth returns the number of open brackets.
func (a *Assembler) Depth() int {
	return len(a.frames)
}

// Pending returns the text typed so far that has not completed a token.
func (a *Assembler) Pending() string {
	return a.prefix() + strings.Join(a.frames, "")
}

// Reset discards everything pending.
func (a *Assembler) Reset() {
	a.frames = nil
	a.negate = false
}

func (a *Assembler) prefix() string {
	if a.negate {
		return "/"
	}
	return ""
}

// Feed processes one key. On error the assembler state is unchanged.
func (a *Assembler) Feed(k Key) (Action, error) {
	if len(a.frames) == 0 {
		return a.feedIdle(k)
	}
	return a.feedGroup(k)
}

func (a *Assembler) feedIdle(k Key) (Action, error) {
	switch k {
	case KeyUndo:
		if a.negate {
			a.negate = false
			return Action{}, nil
		}
		return Action{Kind: ActionUndo}, nil
	case KeyRepeat:
		if a.negate {
			return Action{}, malformed("/", 1, "repeat cannot follow '/'")
		}
		return Action{Kind: ActionRepeat}, nil
	}

	c, err := a.char(k)
	if err != nil {
		return Action{}, err
	}

	switch {
	case isSpace(c):
		return Action{}, nil
	case c == '/':
		a.negate = !a.negate
		return Action{}, nil
	case isDigit(c):
		if a.negate {
			return Action{}, malformed("/"+string(c), 1, "repetition count cannot follow '/'")
		}
		return Action{Kind: ActionAmend, Token: string(c)}, nil
	case isOpen(c):
		a.frames = append(a.frames, string(c))
		return Action{}, nil
	case isClose(c):
		return Action{}, malformed(string(c), 0, fmt.Sprintf("unmatched %q", c))
	}

	token := a.prefix() + string(c)
	a.negate = false
	return Action{Kind: ActionApply, Token: token}, nil
}

func (a *Assembler) feedGroup(k Key) (Action, error) {
	switch k {
	case KeyUndo:
		a.backspace()
		return Action{}, nil
	case KeyRepeat:
		return Action{}, nil
	}

	c, err := a.char(k)
	if err != nil {
		return Action{}, err
	}

	last := len(a.frames) - 1
	top := a.frames[last]

	switch {
	case isSpace(c):
		return Action{}, nil

	case isDigit(c):
		prev := top[len(top)-1]
		if !isDigit(prev) && !isClose(prev) && !a.parser.isFaceLetter(prev) {
			return Action{}, malformed(top+string(c), len(top), "repetition count must follow a face letter or a closing bracket")
		}
		if trailingNumber(top+string(c), a.parser.limits.MaxRepeat) > a.parser.limits.MaxRepeat {
			return Action{}, exhausted(top+string(c), len(top), fmt.Sprintf("repetition count above %d", a.parser.limits.MaxRepeat))
		}
		a.frames[last] = top + string(c)

	case isOpen(c):
		if len(a.frames) >= a.parser.limits.MaxDepth {
			return Action{}, exhausted(a.Pending()+string(c), -1, fmt.Sprintf("groups nested deeper than %d", a.parser.limits.MaxDepth))
		}
		a.frames = append(a.frames, string(c))

	case isClose(c):
		if top[0] != openerOf(c) {
			return Action{}, malformed(top+string(c), len(top), fmt.Sprintf("%q cannot close %q", c, top[0]))
		}
		fragment := top + string(c)
		if _, err := a.parser.Parse(fragment); err != nil {
			return Action{}, err
		}
		a.frames = a.frames[:last]
		if len(a.frames) > 0 {
			a.frames[last-1] += fragment
			return Action{}, nil
		}
		token := a.prefix() + fragment
		a.negate = false
		return Action{Kind: ActionApply, Token: token}, nil

	default:
		// '/' or a face letter
		a.frames[last] = top + string(c)
	}
	return Action{}, nil
}

// char validates that k belongs to the notation alphabet.
func (a *Assembler) char(k Key) (byte, error) {
	if k < 0 || k > 0x7f {
		return 0, malformed(k.String(), 0, "unsupported character")
	}
	c := byte(k)
	if isSpace(c) || isDigit(c) || isOpen(c) || isClose(c) || c == '/' || a.parser.isFaceLetter(c) {
		return c, nil
	}
	return 0, malformed(string(c), 0, fmt.Sprintf("unsupported character %q", c))
}

// backspace removes the last character of the innermost frame. A frame
// holding only its bracket is removed. Removing a closing bracket reopens
// the group it closed.
func (a *Assembler) backspace() {
	last := len(a.frames) - 1
	top := a.frames[last]
	if len(top) == 1 {
		a.frames = a.frames[:last]
		return
	}

	end := top[len(top)-1]
	if isClose(end) {
		start := matchingOpen(top)
		a.frames[last] = top[:start]
		a.frames = append(a.frames, top[start:len(top)-1])
		return
	}
	a.frames[last] = top[:len(top)-1]
}

// matchingOpen returns the index of the bracket that opens the group
// closed by the final character of s.
func matchingOpen(s string) int {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch {
		case isClose(s[i]):
			depth++
		case isOpen(s[i]):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return 0
}

// trailingNumber returns the value of the digit run ending s, or the first
// value above limit.
func trailingNumber(s string, limit int) int {
	i := len(s)
	for i > 0 && isDigit(s[i-1]) {
		i--
	}
	n := 0
	for _, c := range []byte(s[i:]) {
		n = n*10 + int(c-'0')
		if n > limit {
			break
		}
	}
	return n
}

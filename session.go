package puzzled

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Session owns one puzzle together with its notation parser, undo history
// and input assembler. Sessions are independent; a program may run several
// side by side.
//
// A Session is not safe for concurrent use.
type Session struct {
	id      string
	puzzle  *Puzzle
	parser  *Parser
	history *History
	input   *Assembler
	trace   []string
	logger  *slog.Logger

	wasSolved      bool
	solvedCallback func()
}

// New creates a session on a solved puzzle. The standard cube is used
// unless WithTopology is given.
func New(opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.topology == nil {
		cfg.topology = StandardCube()
	}

	parser := NewParser(cfg.topology, cfg.limits)
	s := &Session{
		id:        uuid.New().String(),
		puzzle:    NewPuzzle(cfg.topology),
		parser:    parser,
		history:   NewHistory(cfg.historyLimit),
		input:     NewAssembler(parser),
		wasSolved: true,
	}
	s.logger = cfg.logger.With("session", s.id)
	return s
}

// ID returns the unique identifier used to correlate log records.
func (s *Session) ID() string { return s.id }

// Puzzle returns the session's puzzle.
func (s *Session) Puzzle() *Puzzle { return s.puzzle }

// Topology returns the puzzle topology.
func (s *Session) Topology() *Topology { return s.puzzle.topo }

// Parser returns the parser bound to the session's topology and limits.
func (s *Session) Parser() *Parser { return s.parser }

// SetSolvedCallback sets a callback that fires when a move returns the
// puzzle to the solved state.
func (s *Session) SetSolvedCallback(cb func()) {
	s.solvedCallback = cb
}

// Input feeds one key to the session. Rejected keys leave the puzzle, the
// history and the pending input unchanged and return a *NotationError.
func (s *Session) Input(k Key) error {
	action, err := s.input.Feed(k)
	if err != nil {
		s.logger.Debug("input rejected", "key", k.String(), "pending", s.input.Pending(), "error", err)
		return err
	}

	switch action.Kind {
	case ActionApply:
		return s.Apply(action.Token)
	case ActionAmend:
		return s.amend(action.Token)
	case ActionUndo:
		s.Undo()
	case ActionRepeat:
		s.RepeatLast()
	}
	return nil
}

// Type feeds every character of text as a key. Rejected characters are
// skipped and reported together.
func (s *Session) Type(text string) error {
	var errs []error
	for _, r := range text {
		if err := s.Input(Key(r)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Click is the equivalent of typing the face's lowercase letter.
func (s *Session) Click(f Face) error {
	if !s.puzzle.topo.Has(f) {
		return fmt.Errorf("%w: %q", ErrUnknownFace, byte(f))
	}
	return s.Input(Key(f))
}

// Apply parses and executes a complete token and pushes it onto the
// history. The pending input is not consulted.
func (s *Session) Apply(token string) error {
	root, err := s.parser.Parse(token)
	if err != nil {
		s.logger.Debug("token rejected", "token", token, "error", err)
		return err
	}
	s.execute(root, false)
	s.history.Push(token)
	s.logger.Debug("applied", "token", token, "turns", len(s.trace))
	s.checkSolved()
	return nil
}

// amend appends digits to the most recent entry: the entry is undone and
// re-applied with the new count.
func (s *Session) amend(digits string) error {
	last, ok := s.history.Peek()
	if !ok {
		err := malformed(digits, 0, "repetition count with no previous move")
		s.logger.Debug("input rejected", "key", digits, "error", err)
		return err
	}

	token := last + digits
	root, err := s.parser.Parse(token)
	if err != nil {
		s.logger.Debug("amend rejected", "token", token, "error", err)
		return err
	}
	prev, err := s.parser.Parse(last)
	if err != nil {
		return err
	}

	s.execute(prev, true)
	s.history.Pop()
	s.execute(root, false)
	s.history.Push(token)
	s.logger.Debug("amended", "from", last, "to", token)
	s.checkSolved()
	return nil
}

// Undo pops the most recent entry and executes its inverse.
// Returns false if there is nothing to undo.
func (s *Session) Undo() bool {
	token, ok := s.history.Pop()
	if !ok {
		return false
	}
	root, err := s.parser.Parse(token)
	if err != nil {
		// Entries were parsed before being pushed.
		s.logger.Error("history entry no longer parses", "token", token, "error", err)
		return false
	}
	s.execute(root, true)
	s.logger.Debug("undone", "token", token)
	s.checkSolved()
	return true
}

// RepeatLast re-executes the most recent entry and pushes it again.
// Returns false if the history is empty.
func (s *Session) RepeatLast() bool {
	token, ok := s.history.Peek()
	if !ok {
		return false
	}
	return s.Apply(token) == nil
}

// Reset returns the puzzle to solved and clears history, trace and
// pending input.
func (s *Session) Reset() {
	s.puzzle.Reset()
	s.history.Clear()
	s.input.Reset()
	s.trace = nil
	s.wasSolved = true
	s.logger.Debug("reset")
}

// History returns the applied tokens, oldest first.
func (s *Session) History() []string { return s.history.Entries() }

// Trace returns the atomic turns produced by the most recent execution.
func (s *Session) Trace() []string { return s.trace }

// Pending returns the partially typed input.
func (s *Session) Pending() string { return s.input.Pending() }

// Depth returns the number of currently open brackets.
func (s *Session) Depth() int { return s.input.Depth() }

// State returns the input assembler state.
func (s *Session) State() InputState { return s.input.State() }

func (s *Session) execute(root *Sequence, reverse bool) {
	s.trace = s.puzzle.Execute(root, reverse)
}

func (s *Session) checkSolved() {
	solved := s.puzzle.Solved()
	if solved && !s.wasSolved && s.solvedCallback != nil {
		s.solvedCallback()
	}
	s.wasSolved = solved
}

// Package puzzled simulates twisty puzzles described by a face adjacency
// table and drives them with a compact move notation.
//
// # Features
//
//   - Any topology whose faces share a uniform neighbor cycle
//   - Sticker-level state with named centers, edges and corners
//   - Nested sequences, commutators and conjugates with repetition
//   - Exact inverses for undo
//   - Keystroke-by-keystroke input with group editing
//
// # Quick Start
//
// Apply notation to the standard cube:
//
//	s := puzzled.New()
//	if err := s.Type("[ru]6"); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Solved:", s.Puzzle().Solved())
//
// # Notation
//
//	r        turn the r layer clockwise
//	R        turn the whole puzzle about r
//	/r       counter-clockwise
//	r2       repeat
//	(ru)     sequence
//	[ru]     commutator, r u /r /u
//	{ru}     conjugate, r u /r
//
// # Custom Topologies
//
// A topology is built from counter-clockwise neighbor lists and an opposite
// pairing:
//
//	t, err := puzzled.NewTopology(adjacency, opposites)
//	if err != nil {
//	    log.Fatal(err) // wraps puzzled.ErrConfiguration
//	}
//	s := puzzled.New(puzzled.WithTopology(t))
package puzzled

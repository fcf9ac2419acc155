// Package render draws puzzle state for the terminal.
package render

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/puzzled"
)

// Named sticker colors accepted in the config file.
var namedColors = map[string]string{
	"white":  "#FFFFFF",
	"yellow": "#FFD500",
	"red":    "#C41E3A",
	"orange": "#FF5800",
	"green":  "#009E60",
	"blue":   "#0051BA",
	"purple": "#7B2D8E",
	"pink":   "#FF69B4",
	"gray":   "#808080",
	"black":  "#1A1A1A",
	"brown":  "#8B4513",
	"cyan":   "#00B7EB",
}

// Unknown is the color of a sticker whose location cannot be resolved.
const Unknown = lipgloss.Color("240")

// Palette assigns a terminal color to every face id.
type Palette map[puzzled.Face]lipgloss.Color

// NewPalette converts color names, #hex values or ANSI codes into a
// palette. Faces without a color render as Unknown.
func NewPalette(colors map[puzzled.Face]string) Palette {
	p := make(Palette, len(colors))
	for face, c := range colors {
		if hex, ok := namedColors[strings.ToLower(c)]; ok {
			c = hex
		}
		p[face] = lipgloss.Color(c)
	}
	return p
}

// Color returns the color of a face.
func (p Palette) Color(f puzzled.Face) lipgloss.Color {
	if c, ok := p[f]; ok {
		return c
	}
	return Unknown
}

const (
	cellWidth = 2
	faceWidth = 3 * cellWidth
	stride    = faceWidth + 1
)

// frontTemplate lists the stickers of the front face row by row. The other
// five faces are drawn by remapping it through the standard views.
var frontTemplate = [3][3]string{
	{"flu", "fu", "fur"},
	{"fl", "f", "fr"},
	{"fdl", "fd", "frd"},
}

// netPlacement is the position of each face in the unfolded cube, in
// face-block units.
var netPlacement = map[puzzled.Face][2]int{
	'u': {1, 0},
	'l': {0, 1},
	'f': {1, 1},
	'r': {2, 1},
	'b': {3, 1},
	'd': {1, 2},
}

// Renderer draws sticker states. The standard cube is drawn as an unfolded
// net; any other topology as one line of stickers per face.
type Renderer struct {
	topo    *puzzled.Topology
	palette Palette
	styles  *lipgloss.Renderer
	logger  *slog.Logger
	views   map[puzzled.Face]puzzled.View
	warned  map[string]bool
}

// New creates a renderer for a topology. A nil styles renderer uses the
// lipgloss default; a nil logger uses slog.Default().
func New(topo *puzzled.Topology, palette Palette, styles *lipgloss.Renderer, logger *slog.Logger) *Renderer {
	if styles == nil {
		styles = lipgloss.DefaultRenderer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		topo:    topo,
		palette: palette,
		styles:  styles,
		logger:  logger,
		views:   puzzled.StandardViews(),
		warned:  make(map[string]bool),
	}
}

// SetPalette replaces the sticker colors.
func (r *Renderer) SetPalette(p Palette) {
	r.palette = p
}

// IsNet reports whether the topology is drawn as a cube net.
func (r *Renderer) IsNet() bool {
	if r.topo.FaceCount() != 6 || r.topo.FacePeriod() != 4 {
		return false
	}
	for f := range netPlacement {
		if !r.topo.Has(f) {
			return false
		}
	}
	return true
}

// Render draws the stickers.
func (r *Renderer) Render(s *puzzled.Stickers) string {
	if r.IsNet() {
		return r.net(s)
	}
	return r.listing(s)
}

// Face draws the 3x3 grid of one face of the standard cube as seen when
// that face is held toward the viewer.
func (r *Renderer) Face(s *puzzled.Stickers, front puzzled.Face) []string {
	view := r.views[front]
	lines := make([]string, 3)
	for row, locs := range frontTemplate {
		var b strings.Builder
		for _, loc := range locs {
			b.WriteString(r.sticker(s, view.Locate(loc)))
		}
		lines[row] = b.String()
	}
	return lines
}

func (r *Renderer) net(s *puzzled.Stickers) string {
	blank := strings.Repeat(" ", faceWidth)
	grid := [3][4][]string{}
	for f, pos := range netPlacement {
		grid[pos[1]][pos[0]] = r.Face(s, f)
	}

	var lines []string
	for _, row := range grid {
		last := 0
		for col, block := range row {
			if block != nil {
				last = col
			}
		}
		for line := 0; line < 3; line++ {
			parts := make([]string, 0, last+1)
			for col := 0; col <= last; col++ {
				if row[col] == nil {
					parts = append(parts, blank)
					continue
				}
				parts = append(parts, row[col][line])
			}
			lines = append(lines, strings.Join(parts, " "))
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) listing(s *puzzled.Stickers) string {
	var lines []string
	for _, f := range r.topo.Faces() {
		var b strings.Builder
		fmt.Fprintf(&b, "%s: ", f)
		for _, loc := range s.Locations() {
			if loc[0] == byte(f) {
				b.WriteString(r.sticker(s, loc))
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// sticker draws one cell. Unresolvable locations degrade to the Unknown
// color and are reported once.
func (r *Renderer) sticker(s *puzzled.Stickers, loc string) string {
	face, err := s.Get(loc)
	if err != nil {
		if !r.warned[loc] {
			r.warned[loc] = true
			r.logger.Warn("cannot draw sticker", "location", loc, "error", err)
		}
		return r.styles.NewStyle().Background(Unknown).Render("? ")
	}
	return r.styles.NewStyle().
		Background(r.palette.Color(face)).
		Foreground(lipgloss.Color("0")).
		Render(face.String() + " ")
}

// FaceAt returns the face drawn at a cell of the output of Render, with
// x the column and y the line.
func (r *Renderer) FaceAt(x, y int) (puzzled.Face, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	if !r.IsNet() {
		faces := r.topo.Faces()
		if y >= len(faces) || x < 3 {
			return 0, false
		}
		return faces[y], true
	}

	if x%stride >= faceWidth {
		return 0, false
	}
	col, row := x/stride, y/3
	for f, pos := range netPlacement {
		if pos[0] == col && pos[1] == row {
			return f, true
		}
	}
	return 0, false
}

// Width returns the number of columns Render uses.
func (r *Renderer) Width() int {
	if r.IsNet() {
		return 4*stride - 1
	}
	return 3 + cellWidth*(1+2*r.topo.FacePeriod())
}

// Height returns the number of lines Render uses.
func (r *Renderer) Height() int {
	if r.IsNet() {
		return 9
	}
	return r.topo.FaceCount()
}

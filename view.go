package puzzled

// View renames faces to look at the puzzle from another side. A location
// written from the default viewpoint (front face f) is translated into the
// location seen at the same screen position from the view's viewpoint.
// Faces missing from the map keep their name.
type View map[Face]Face

// Locate translates a location name through the view.
func (v View) Locate(location string) string {
	b := []byte(location)
	for i, c := range b {
		if to, ok := v[Face(c)]; ok {
			b[i] = byte(to)
		}
	}
	return string(b)
}

// StandardViews returns the six held-face views of the standard cube keyed
// by the face shown at the front.
func StandardViews() map[Face]View {
	return map[Face]View{
		'f': {},
		'u': {'u': 'b', 'f': 'u', 'd': 'f', 'b': 'd'},
		'd': {'u': 'f', 'f': 'd', 'd': 'b', 'b': 'u'},
		'l': {'r': 'f', 'f': 'l', 'l': 'b', 'b': 'r'},
		'r': {'r': 'b', 'f': 'r', 'l': 'f', 'b': 'l'},
		'b': {'r': 'l', 'f': 'b', 'l': 'r', 'b': 'f'},
	}
}

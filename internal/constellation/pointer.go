package constellation

// Cursor is the pointer affordance the host should display.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer        // hovering a star
	CursorGrabbing       // dragging a star
)

func (c Cursor) String() string {
	switch c {
	case CursorPointer:
		return "pointer"
	case CursorGrabbing:
		return "grabbing"
	default:
		return "default"
	}
}

// Cursor returns the current affordance.
func (f *Field) Cursor() Cursor { return f.cursor }

// Dragging reports whether a star is held.
func (f *Field) Dragging() bool { return f.dragging }

// Selected returns a copy of the held star, if any.
func (f *Field) Selected() (Star, bool) {
	if f.selected == nil {
		return Star{}, false
	}
	return *f.selected, true
}

// PointerDown grabs the star under (x, y). Presses on empty space are ignored.
// Every press starts a new gesture, so a suppression left over from a drag
// released off the canvas is dropped here.
func (f *Field) PointerDown(x, y float64) {
	f.suppressClick = false
	s := f.starAt(x, y)
	if s == nil {
		return
	}
	f.selected = s
	f.dragging = true
	f.dragMoved = false
	f.cursor = CursorGrabbing
}

// PointerMove moves the held star to (x, y), or updates the hover affordance.
// A dragged star is not clamped; the next Step pulls it back inside the bounds.
func (f *Field) PointerMove(x, y float64) {
	if f.dragging && f.selected != nil {
		if f.selected.X != x || f.selected.Y != y {
			f.dragMoved = true
		}
		f.selected.X = x
		f.selected.Y = y
		return
	}
	if f.starAt(x, y) != nil {
		f.cursor = CursorPointer
	} else {
		f.cursor = CursorDefault
	}
}

// PointerUp ends any drag regardless of where the pointer is.
func (f *Field) PointerUp() {
	if f.dragging && f.dragMoved {
		f.suppressClick = true
	}
	f.releaseSelection()
}

// Click fires the inspect handler for the star under (x, y). The first click
// after a drag that moved a star is swallowed, as is any click mid-drag.
func (f *Field) Click(x, y float64) {
	if f.dragging {
		return
	}
	if f.suppressClick {
		f.suppressClick = false
		return
	}
	s := f.starAt(x, y)
	if s == nil || f.onInspect == nil {
		return
	}
	f.onInspect(s.Skill, s.Progress)
}

func (f *Field) releaseSelection() {
	f.dragging = false
	f.dragMoved = false
	f.selected = nil
	f.cursor = CursorDefault
}

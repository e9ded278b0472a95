package snake

// CellSet is a set of occupied cells.
type CellSet map[Cell]struct{}

// Has reports whether c is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Body is the ordered sequence of cells occupied by the snake, head first.
// While a session is running it is never empty and never overlaps itself.
type Body []Cell

// InitialBody returns a vertical snake of the given length whose head sits
// on the board center and whose tail trails downward.
func InitialBody(g Geometry, length int) Body {
	head := g.Center()
	body := make(Body, length)
	for i := range body {
		body[i] = Cell{Col: head.Col, Row: head.Row + i}
	}
	return body
}

// Head returns the first cell. The body must not be empty.
func (b Body) Head() Cell {
	return b[0]
}

// Len returns the number of cells.
func (b Body) Len() int {
	return len(b)
}

// Contains reports whether any cell of the body equals c.
func (b Body) Contains(c Cell) bool {
	for _, seg := range b {
		if seg == c {
			return true
		}
	}
	return false
}

// HitsBody reports whether c lands on the body behind the head. The tail is
// included even though it would vacate this tick.
func (b Body) HitsBody(c Cell) bool {
	if len(b) < 2 {
		return false
	}
	return b[1:].Contains(c)
}

// Set returns the body as a CellSet.
func (b Body) Set() CellSet {
	set := make(CellSet, len(b))
	for _, c := range b {
		set[c] = struct{}{}
	}
	return set
}

// Cells returns an independent copy of the body.
func (b Body) Cells() []Cell {
	out := make([]Cell, len(b))
	copy(out, b)
	return out
}

// grow returns a new body with head prepended and nothing removed.
func (b Body) grow(head Cell) Body {
	next := make(Body, 0, len(b)+1)
	next = append(next, head)
	return append(next, b...)
}

// slide returns a new body with head prepended and the tail dropped.
func (b Body) slide(head Cell) Body {
	next := b.grow(head)
	return next[:len(next)-1]
}

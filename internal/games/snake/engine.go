package snake

// Collision describes why a step could not be committed.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionWall           // Head left the board
	CollisionSelf           // Head landed on the body (tail included)
)

func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	default:
		return "unknown"
	}
}

// Board is the mutable part of a running game that one step touches.
type Board struct {
	Body  Body
	Food  Cell
	Score int
}

// StepResult reports what a single step did.
type StepResult struct {
	Head      Cell
	Collision Collision
	Ate       bool
	BoardFull bool // Food was eaten and no free cell is left for new food
}

// Engine is the authoritative step function of a running game.
type Engine struct {
	geom         Geometry
	spawner      *FoodSpawner
	scorePerFood int
}

// NewEngine creates an engine for one board.
func NewEngine(geom Geometry, spawner *FoodSpawner, scorePerFood int) *Engine {
	return &Engine{
		geom:         geom,
		spawner:      spawner,
		scorePerFood: scorePerFood,
	}
}

// Step advances b by one cell in direction d.
//
// The collision check runs before anything is committed and compares the
// new head against the whole body behind the head, tail included. On
// collision b is left untouched. Otherwise the head is prepended; eating
// food keeps the tail (growth of one), adds the bonus and respawns food,
// any other move drops the tail.
func (e *Engine) Step(b *Board, d Direction) StepResult {
	head := Advance(b.Body.Head(), d)
	res := StepResult{Head: head}

	switch {
	case !e.geom.Contains(head):
		res.Collision = CollisionWall
		return res
	case b.Body.HitsBody(head):
		res.Collision = CollisionSelf
		return res
	}

	if head != b.Food {
		b.Body = b.Body.slide(head)
		return res
	}

	res.Ate = true
	b.Body = b.Body.grow(head)
	b.Score += e.scorePerFood

	food, ok := e.spawner.Place(b.Body)
	b.Food = food
	res.BoardFull = !ok
	return res
}

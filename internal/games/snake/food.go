package snake

import (
	"math/rand"
)

// Spawn picks a uniformly random cell of a cols×rows grid that is not in
// occupied, resampling until it finds one.
//
// It never returns when occupied covers the whole grid; callers must keep
// len(occupied) < cols*rows. FoodSpawner.Place is the guarded variant.
func Spawn(rng *rand.Rand, occupied CellSet, cols, rows int) Cell {
	for {
		c := Cell{Col: rng.Intn(cols), Row: rng.Intn(rows)}
		if !occupied.Has(c) {
			return c
		}
	}
}

// FoodSpawner places food on free cells using an explicit random source.
type FoodSpawner struct {
	rng        *rand.Rand
	geom       Geometry
	denseRatio float64
}

// NewFoodSpawner creates a spawner for the given board. Once the occupied
// fraction of the board exceeds denseRatio the spawner enumerates free
// cells instead of rejection sampling.
func NewFoodSpawner(rng *rand.Rand, geom Geometry, denseRatio float64) *FoodSpawner {
	return &FoodSpawner{
		rng:        rng,
		geom:       geom,
		denseRatio: denseRatio,
	}
}

// Place returns a free cell, or false when the snake covers the board.
func (f *FoodSpawner) Place(body Body) (Cell, bool) {
	occupied := body.Set()
	area := f.geom.Area()

	// Out-of-bounds cells never occur in a live body; count only board cells.
	taken := 0
	for c := range occupied {
		if f.geom.Contains(c) {
			taken++
		}
	}
	if area == 0 || taken >= area {
		return noFood, false
	}

	if float64(taken)/float64(area) > f.denseRatio {
		return f.pickFree(occupied, area-taken), true
	}
	return Spawn(f.rng, occupied, f.geom.Columns, f.geom.Rows), true
}

// pickFree chooses uniformly among the free cells in row-major order.
func (f *FoodSpawner) pickFree(occupied CellSet, free int) Cell {
	n := f.rng.Intn(free)
	for row := 0; row < f.geom.Rows; row++ {
		for col := 0; col < f.geom.Columns; col++ {
			c := Cell{Col: col, Row: row}
			if occupied.Has(c) {
				continue
			}
			if n == 0 {
				return c
			}
			n--
		}
	}
	return noFood
}

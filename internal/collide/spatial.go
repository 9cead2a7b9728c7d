// Package collide separates overlapping nodes. A spatial hash over a fixed
// cell size produces candidate pairs; the narrow phase pushes overlapping
// nodes apart unless they share a constraint group, since linked bodies are
// expected to touch.
package collide

import (
	"math"
	"sort"

	"github.com/san-kum/sway/internal/vec"
)

// DefaultCellSize is the broad-phase grid pitch. It should stay at or above
// the largest expected collider diameter so overlapping pairs always share
// at least one cell.
const DefaultCellSize = 50.0

// CellEntry maps one collider to one grid cell it overlaps. Entries sort
// lexicographically on (CellX, CellY, Index) so colliders sharing a cell
// become adjacent after sorting.
type CellEntry struct {
	CellX int32
	CellY int32
	Index int32
}

// buildEntries emits a sorted entry per (collider, overlapped cell). A
// collider covers every cell its radius touches.
func buildEntries(positions []vec.Vec2, radii []float64, cellSize float64) []CellEntry {
	entries := make([]CellEntry, 0, len(positions))

	for i := range positions {
		p := positions[i]
		r := radii[i]
		minX := int32(math.Floor((p.X - r) / cellSize))
		maxX := int32(math.Floor((p.X + r) / cellSize))
		minY := int32(math.Floor((p.Y - r) / cellSize))
		maxY := int32(math.Floor((p.Y + r) / cellSize))

		for cx := minX; cx <= maxX; cx++ {
			for cy := minY; cy <= maxY; cy++ {
				entries = append(entries, CellEntry{CellX: cx, CellY: cy, Index: int32(i)})
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.CellX != b.CellX {
			return a.CellX < b.CellX
		}
		if a.CellY != b.CellY {
			return a.CellY < b.CellY
		}
		return a.Index < b.Index
	})
	return entries
}

// candidatePairs scans sorted entries for colliders sharing a cell. Each
// pair is reported once, low index first, in scan order — stable for
// identical input, which keeps the narrow phase deterministic.
func candidatePairs(entries []CellEntry) [][2]int32 {
	var pairs [][2]int32
	seen := make(map[[2]int32]bool)

	for start := 0; start < len(entries); {
		end := start + 1
		for end < len(entries) &&
			entries[end].CellX == entries[start].CellX &&
			entries[end].CellY == entries[start].CellY {
			end++
		}

		for i := start; i < end; i++ {
			for j := i + 1; j < end; j++ {
				p := [2]int32{entries[i].Index, entries[j].Index}
				if p[0] == p[1] || seen[p] {
					continue
				}
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
		start = end
	}
	return pairs
}

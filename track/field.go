// SPDX-License-Identifier: MIT

package track

// DistanceField returns, for every cell, the number of conn-steps over drivable
// cells to the nearest finish cell. Walls and cells that cannot reach a finish
// hold Unreachable. The result has the same shape as the track: field[row][col].
//
// Behavior:
//  1. Seed a queue with every finish cell at distance 0.
//  2. Pop in FIFO order and relax drivable neighbours not yet seen.
//
// Time:   O(R·C·d), d = 4 or 8.
// Memory: O(R·C).
func (t *Track) DistanceField(conn Connectivity) [][]int {
	total := t.Rows * t.Cols
	dist := make([]int, total)
	for i := range dist {
		dist[i] = Unreachable
	}

	queue := make([]int, 0, total)
	for _, p := range t.finishes {
		i := t.index(p)
		dist[i] = 0
		queue = append(queue, i)
	}

	offsets := NeighborOffsets(conn)
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		up := t.position(u)
		for _, d := range offsets {
			vp := Pos{Row: up.Row + d[0], Col: up.Col + d[1]}
			if !t.Drivable(vp) {
				continue
			}
			v := t.index(vp)
			if dist[v] == Unreachable {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}

	field := make([][]int, t.Rows)
	for r := range field {
		field[r] = dist[r*t.Cols : (r+1)*t.Cols : (r+1)*t.Cols]
	}
	return field
}

// SPDX-License-Identifier: MIT

// Package construct builds routes over a track.Track with a deterministic,
// depth-bounded best-first search.
//
// What
//
//   - Search states are (row, col, vRow, vCol). Three move models exist:
//     ModelVelocity (classic racetrack physics: change each velocity
//     component by -1, 0 or +1, then move by the new velocity along a
//     straight segment that must stay on drivable cells), ModelConn4 and
//     ModelConn8 (step to an adjacent drivable cell, velocity stays zero).
//   - A velocity move whose segment enters the goal region stops on the
//     first finish cell it touches.
//   - Moving onto grass costs GrassCost, any other cell costs 1.
//   - The search is seeded from every start cell and returns the cheapest
//     route with at most MaxDepth moves.
//
// Determinism
//
//	Labels are popped in a total order: cost, then depth, then state
//	(row, col, vRow, vCol), then generation sequence. Parallel expansion
//	(WithWorkers) writes into index-addressed slots, so the result does not
//	depend on goroutine scheduling.
//
// Pruning
//
//	A label is dropped when another label for the same state is no more
//	expensive and no deeper (Pareto dominance), or when even the fastest
//	possible continuation cannot reach a finish cell within the remaining
//	depth. The bound comes from track.DistanceField and never rejects a
//	label that could still finish, so raising MaxDepth never loses a route.
//
// Errors
//
//   - ErrNilTrack         if the track pointer is nil.
//   - ErrOptionViolation  if an Option received an invalid value.
//   - ErrNoRouteFound     if no route exists within MaxDepth; the Result is
//     still returned and carries the best partial route.
//   - ctx.Err()           if the context supplied via WithContext is done.
//
// Complexity
//
//	With S reachable states and D = MaxDepth, at most S·D labels are kept;
//	each pop costs O(log(S·D)) plus O(b) successor checks, b = 9, 4 or 8.
//	A velocity successor check walks its segment, O(|v|) cells.
package construct

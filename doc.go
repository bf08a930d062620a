// Package racetrack constructs routes through racetrack maps.
//
// What is racetrack?
//
//	A small pipeline and the libraries behind it:
//		• track/    : load a text track file into an immutable grid (wall, road, grass, start, finish)
//		• construct/: depth-bounded, deterministic best-first route search (velocity or adjacency moves)
//		• route/    : the Route type and its CSV exporter / importer
//		• visualize/: text overlay and external visualiser collaborators
//		• cmd/racetrack: the CLI tying them together
//
// Quick example:
//
//	OOOOOO
//	OS..FO      racetrack --track tracks/track_01.t --d 12 --visualize
//	OOOOOO
//
// The route is written to routes/output.csv:
//
//	step,row,col,v_row,v_col,cell,cost
//	0,1,1,0,0,start,0
//	...
//
//	go install github.com/katalvlaran/racetrack/cmd/racetrack@latest
package racetrack

package reveal

import "github.com/lixenwraith/trough/vmath"

// StrokeRuns splits live points into contiguous runs sharing a stroke index
func StrokeRuns(live []LivePoint) [][]LivePoint {
	var runs [][]LivePoint
	start := 0
	for i := 1; i <= len(live); i++ {
		if i == len(live) || live[i].StrokeIndex != live[start].StrokeIndex {
			runs = append(runs, live[start:i])
			start = i
		}
	}
	return runs
}

// RunPaths converts stroke runs to position polylines
func RunPaths(live []LivePoint) [][]vmath.Point {
	runs := StrokeRuns(live)
	paths := make([][]vmath.Point, len(runs))
	for i, run := range runs {
		path := make([]vmath.Point, len(run))
		for j, p := range run {
			path[j] = p.Pos()
		}
		paths[i] = path
	}
	return paths
}

package kdtile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// MaxAccurateDepth is the deepest level at which subdivided coordinates stay
// visually exact. Build does not enforce it; callers that accept depth from
// users should reject anything larger.
const MaxAccurateDepth = 12

// Build subdivides root depth times and returns every triangle produced, in
// pre-order: each subdivided triangle is marked interior and precedes its
// descendants. The filter runs on each child as it is created, so a pruned
// child contributes nothing to the result.
//
// Build recurses once per level. Depths above MaxAccurateDepth are accepted
// but the coordinates of the deepest triangles will have drifted.
func Build(root Triangle, depth int, f Filter) ([]Triangle, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	if f == nil {
		f = AcceptAll{}
	}
	out := build(nil, root, depth, f)
	logBuild(out, depth)
	return out, nil
}

// concurrentLevels is how many levels BuildConcurrent fans out over before
// each goroutine finishes its subtree sequentially.
const concurrentLevels = 3

// BuildConcurrent returns the same triangles in the same order as Build, but
// builds the subtrees below the first few levels in parallel. f must be safe
// for concurrent use; AcceptAll and RegionBounded are.
func BuildConcurrent(root Triangle, depth int, f Filter) ([]Triangle, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	if f == nil {
		f = AcceptAll{}
	}
	out := buildConcurrent(root, depth, concurrentLevels, f)
	logBuild(out, depth)
	return out, nil
}

func logBuild(out []Triangle, depth int) {
	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		s := Summarize(out)
		l.Debug("kdtile: build complete",
			"depth", depth,
			"triangles", len(out),
			"interior", s.Interior,
			"leaves", s.Leaves)
	}
}

func build(out []Triangle, t Triangle, depth int, f Filter) []Triangle {
	if depth == 0 {
		return append(out, t)
	}
	children := Subdivide(t, f)
	out = append(out, t.withInterior())
	for _, c := range children {
		out = build(out, c, depth-1, f)
	}
	return out
}

func buildConcurrent(t Triangle, depth, spawn int, f Filter) []Triangle {
	if depth == 0 || spawn == 0 {
		return build(nil, t, depth, f)
	}
	children := Subdivide(t, f)
	parts := make([][]Triangle, len(children))
	var wg sync.WaitGroup
	for i, c := range children {
		wg.Add(1)
		go func(i int, c Triangle) {
			defer wg.Done()
			parts[i] = buildConcurrent(c, depth-1, spawn-1, f)
		}(i, c)
	}
	wg.Wait()

	n := 1
	for _, p := range parts {
		n += len(p)
	}
	out := make([]Triangle, 0, n)
	out = append(out, t.withInterior())
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Partition splits a build result into interior and leaf triangles,
// preserving order within each group.
func Partition(tris []Triangle) (interior, leaves []Triangle) {
	for _, t := range tris {
		if t.IsInterior() {
			interior = append(interior, t)
		} else {
			leaves = append(leaves, t)
		}
	}
	return interior, leaves
}

// Stats summarizes a build result.
type Stats struct {
	Interior int
	Leaves   int
	Kites    int // leaf kite halves
	Darts    int // leaf dart halves
}

func Summarize(tris []Triangle) Stats {
	var s Stats
	for _, t := range tris {
		if t.IsInterior() {
			s.Interior++
			continue
		}
		s.Leaves++
		if t.Kind() == Kite {
			s.Kites++
		} else {
			s.Darts++
		}
	}
	return s
}

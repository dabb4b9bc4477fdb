// Package geom is a fixture for the source provider tests.
package geom

import (
	"context"
	"time"

	"github.com/broady/pysig"
)

// Point is bound by name.
type Point struct{ X, Y float64 }

// Points is an alias of a wrapper and resolves through it.
type Points = pysig.List[Point]

// Scale multiplies every point by a factor.
//
// Points are returned in input order.
//
//pysig:def scale
func Scale(points pysig.List[Point], by float64) pysig.List[Point] {
	return points
}

// Histogram counts words.
//
//pysig:def
func Histogram(ctx context.Context, words pysig.Set[string]) (pysig.Dict[string, int], error) {
	return nil, nil
}

//pysig:def
func Bounds(pts Points) pysig.Tuple2[Point, Point] {
	return nil
}

//pysig:def
func Each(pts Points, fn pysig.Callable[func(Point, int) bool], every time.Duration) {}

//pysig:def
func Origin() pysig.Tuple0 {
	return nil
}

//pysig:def
func Blob(_ []byte, b byte) any {
	return nil
}

//pysig:skip
func Internal(n int) int {
	return n
}

func Undocumented(n int) int {
	return n
}

func unexported() {}

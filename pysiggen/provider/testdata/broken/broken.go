// Package broken holds functions that cannot be documented.
package broken

import "github.com/broady/pysig"

//pysig:def
func Raw(m map[string]int) {}

//pysig:def
func Variadic(xs ...int) {}

//pysig:def
func Pair() (int, string) {
	return 0, ""
}

//pysig:def
func Fine(xs pysig.List[int]) int {
	return 0
}

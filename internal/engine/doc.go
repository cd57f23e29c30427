// Package engine computes recipe cost, profit and the recipe-versus-raw
// comparison against an immutable price table snapshot. Every function is
// pure: no I/O, no logging, no mutation of its inputs, and no error paths.
// Unknown ingredient names contribute 0 to every sum.
package engine

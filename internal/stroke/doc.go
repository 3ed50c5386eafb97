// Package stroke converts stroked paths into outlines that fill with
// the non-zero rule.
//
// Curves are flattened first, so every subpath is a polyline. The
// outline is the union of one quadrilateral per segment, one join shape
// per interior vertex and one cap shape per open end. Every piece is
// emitted with the same orientation, so overlapping pieces never cancel
// under the non-zero rule.
//
// # Line caps
//
//   - LineCapButt: flat, ending exactly at the endpoint
//   - LineCapRound: a half disk of radius width/2
//   - LineCapSquare: extends width/2 beyond the endpoint
//
// A subpath that draws but has zero length renders as a dot with round
// caps, a square with square caps, and nothing with butt caps.
//
// # Line joins
//
//   - LineJoinMiter: sharp corner, beveled beyond the miter limit
//   - LineJoinRound: a disk at the corner
//   - LineJoinBevel: a straight line across the corner
//
// # Usage
//
//	e := stroke.NewExpander(stroke.Style{Width: 2, Cap: stroke.LineCapRound})
//	outline := e.Expand(p.Elements())
package stroke

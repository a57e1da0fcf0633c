// Package offset implements the polygon offsetting engine: winding
// normalization, convex-hull preprocessing, the three expansion
// algorithms (mitered, beveled, arc-generalized) and quadrant-based
// directional offsetting.
//
// Every operation is a pure function of its inputs. Offsetting
// algorithms require counter-clockwise vertex order; they enforce it
// themselves through Normalize rather than trusting the caller.
package offset

// Package collide implements the tiered overlap detector between
// obstacle snapshots, point-containment and topmost-hit queries, and
// the authoring-time self-intersection checks used while a custom
// polygon is being built one point at a time.
package collide

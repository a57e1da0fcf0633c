// Package obstacle defines the snapshot value types consumed by the
// clearance engine. An Obstacle is an immutable per-call description of
// a polygonal region (shape kind, placement, rotation, expansion
// settings); the mutable store that produces snapshots lives in
// pkg/scene.
package obstacle

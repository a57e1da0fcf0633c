// Package scene owns the mutable obstacle store that the geometry
// engine itself never holds: an ordered list of placed obstacles with
// stable identities and names. All mutations are clearance-checked
// through the collide detector and rolled back on violation, the same
// accept-or-revert discipline the interactive editor applies.
package scene

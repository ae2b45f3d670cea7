package geometry

import "github.com/dfoxwell/lightdist/pkg/core"

// AABB aliases the shared axis-aligned bounding box type. Shapes return
// core.AABB directly from BoundingBox(); the alias lets the Shape and BVH
// code in this package refer to it as the bare, package-local name.
type AABB = core.AABB

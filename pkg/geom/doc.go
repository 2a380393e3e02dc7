// Package geom implements the transformation algebra used to place objects:
// identity, translation, rotation, scale, combined (translation+rotation),
// general (translation+rotation+scale) and a dense homogeneous matrix used to
// accumulate chains of local transforms.
//
// Every transform maps points from its local frame to its master frame as
//
//	master = R·(S⊙local) + T
//
// and back. Composition is written left to right and applied right to left:
// Compose(a, b) maps a point through b first, then a. Composing transforms of
// different kinds always yields an *HMatrix, which keeps the algebra closed.
//
// Angles are in degrees throughout.
package geom

// Package geom holds the 3D math the orrery needs on top of mgl64: camera
// poses, a perspective frustum, and ray/sphere intersection.
package geom

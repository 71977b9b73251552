// Package soft3d is a CPU-only 3D rendering pipeline.
//
// # Overview
//
// soft3d turns world-space triangle meshes and a camera pose into an ARGB
// color buffer with correct occlusion, without any GPU API. The pipeline
// transforms vertices to camera space, clips them against the near and far
// planes, projects them onto the view plane, clips them against the screen,
// fan-triangulates the clipped polygons and scan-converts each triangle
// with barycentric interpolation and a per-pixel depth test. Programmable
// hooks let callers move vertices before projection and compute the color
// of every visible pixel.
//
// # Quick Start
//
//	cube := meshgen.Cube(1)
//	cam, err := soft3d.NewCamera(640, 480, soft3d.WithBackground(soft3d.Black))
//	if err != nil {
//	    return err
//	}
//	cam.Add(soft3d.NewDrawable(cube, geom.NewTransformAt(geom.V3(0, 5, 0))))
//
//	frame := soft3d.NewFrame()
//	target := soft3d.NewTarget(640, 480)
//	if err := soft3d.Render(frame, cam, target); err != nil {
//	    return err
//	}
//	target.SavePNG("cube.png")
//
// # Coordinate System
//
// World and camera space are right-handed with Z up:
//   - X increases right
//   - Y increases forward, away from the camera (depth)
//   - Z increases up
//
// Pixel coordinates have the origin at the top-left corner of the target
// with Y increasing down. Faces wind counter-clockwise when seen from the
// side their normal points to.
//
// # Interpolation
//
// Depth, texture coordinates and normals are interpolated linearly in
// screen space. This is not perspective-correct; textures on surfaces
// seen at a grazing angle show the usual affine distortion.
//
// # Concurrency
//
// Render is synchronous. All scratch state lives in a Frame, which must not
// be shared between concurrent renders. Cameras and drawables must not be
// mutated during a render.
package soft3d

// Version is the library version.
const Version = "0.1.0"

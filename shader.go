package soft3d

import (
	"image"

	"github.com/gogpu/soft3d/geom"
)

// Vertex is the context handed to a VertexShader, once per face vertex.
// Local is the object-space position; Position is the world-space position
// that will be projected and may be modified.
type Vertex struct {
	Local    geom.Vec3
	Position geom.Vec3
	Normal   geom.Vec3
	UV       geom.Vec2

	// Index is the mesh vertex index.
	Index  int
	Object *Drawable
	Camera *Camera
}

// Fragment is the context handed to a FragmentShader for every pixel that
// passes the depth test. The shader sets Color; its initial value is
// Albedo.
type Fragment struct {
	X, Y       int
	Depth      float32
	UV         geom.Vec2
	Normal     geom.Vec3
	FaceNormal geom.Vec3
	Albedo     Color
	Color      Color

	Object *Drawable
	Camera *Camera
}

// VertexShader may move a vertex before projection.
type VertexShader func(v *Vertex)

// FragmentShader computes the color of a fragment.
type FragmentShader func(f *Fragment)

// FlatShader lights the face by the angle between its normal and the view
// direction: Albedo scaled by clamp(dot(FaceNormal, -forward), 0, 1).
// Alpha is taken from Albedo.
func FlatShader(f *Fragment) {
	k := clamp01(f.FaceNormal.Dot(f.Camera.Transform().Forward().Neg()))
	f.Color = f.Albedo.Scale(k)
}

// SmoothShader is FlatShader using the interpolated vertex normal.
func SmoothShader(f *Fragment) {
	k := clamp01(f.Normal.Normalize().Dot(f.Camera.Transform().Forward().Neg()))
	f.Color = f.Albedo.Scale(k)
}

// UVShader writes the texture coordinate as red and green.
func UVShader(f *Fragment) {
	f.Color = Color{R: clamp01(f.UV.X()), G: clamp01(f.UV.Y()), B: 0, A: 1}
}

// DepthShader writes depth as gray, white at near and black at far.
func DepthShader(f *Fragment) {
	near, far := f.Camera.Near(), f.Camera.Far()
	k := 1 - clamp01((f.Depth-near)/(far-near))
	f.Color = Color{R: k, G: k, B: k, A: 1}
}

// TextureShader returns a shader sampling tex at the fragment UV with
// nearest filtering and shading the result like FlatShader. V grows
// upwards, so v = 0 is the bottom row of tex.
func TextureShader(tex image.Image) FragmentShader {
	b := tex.Bounds()
	return func(f *Fragment) {
		if b.Empty() {
			FlatShader(f)
			return
		}
		u, v := wrapUnit(f.UV.X()), wrapUnit(f.UV.Y())
		x := b.Min.X + min(int(u*float32(b.Dx())), b.Dx()-1)
		y := b.Max.Y - 1 - min(int(v*float32(b.Dy())), b.Dy()-1)
		texel := FromColor(tex.At(x, y))
		k := clamp01(f.FaceNormal.Dot(f.Camera.Transform().Forward().Neg()))
		f.Color = Color{
			R: texel.R * f.Albedo.R * k,
			G: texel.G * f.Albedo.G * k,
			B: texel.B * f.Albedo.B * k,
			A: texel.A * f.Albedo.A,
		}
	}
}

// wrapUnit maps v into [0, 1) with repeat addressing.
func wrapUnit(v float32) float32 {
	v -= float32(int(v))
	if v < 0 {
		v++
	}
	return v
}

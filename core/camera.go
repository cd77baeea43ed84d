package core

import (
	"math"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/koruview/model"
)

// View constants. All matrices are right-handed with
// OpenGL clip space depth.
const (
	DragSensitivity   = 0.005
	CameraSensitivity = 0.5
	CameraDistance    = 5.0
	FieldOfView       = 45.0
	NearPlane         = 0.1
	FarPlane          = 100.0
)

// WorldUp is the fixed camera up vector
var WorldUp = glm.Vec3{0, 1, 0}

// CameraPosition places the camera on the view axis at a
// distance proportional to the zoom factor
func CameraPosition(in InputState) glm.Vec3 {
	return glm.Vec3{0, 0, float32(CameraDistance * in.Zoom)}
}

// CameraDirection converts the camera yaw and pitch offset into a unit
// vector pointing from the scene towards the camera
func CameraDirection(in InputState) glm.Vec3 {
	yaw := float64(in.CameraOffset[0] * CameraSensitivity)
	pitch := float64(in.CameraOffset[1] * CameraSensitivity)
	return glm.Vec3{
		float32(math.Sin(yaw) * math.Cos(pitch)),
		float32(-math.Sin(pitch)),
		float32(math.Cos(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// ViewMatrix looks from the camera position against CameraDirection
func ViewMatrix(in InputState) glm.Mat4 {
	pos := CameraPosition(in)
	return glm.LookAtV(pos, pos.Sub(CameraDirection(in)), WorldUp)
}

// ProjectionMatrix is the fixed perspective for the given aspect ratio
func ProjectionMatrix(aspect float32) glm.Mat4 {
	return glm.Perspective(glm.DegToRad(FieldOfView), aspect, NearPlane, FarPlane)
}

// ModelMatrix rotates by the accumulated drag, yaw first then pitch,
// after translating by the model offset and the instance offset
func ModelMatrix(in InputState, offset glm.Vec3) glm.Mat4 {
	rotation := glm.HomogRotate3DY(float32(in.Drag[0] * DragSensitivity)).
		Mul4(glm.HomogRotate3DX(float32(in.Drag[1] * DragSensitivity)))
	translation := glm.Translate3D(
		in.ModelOffset[0]+offset[0],
		in.ModelOffset[1]+offset[1],
		offset[2],
	)
	return rotation.Mul4(translation)
}

// FrameUniform computes the shared per-frame matrices for a viewport.
// Model is set for an instance without offset.
func FrameUniform(in InputState, aspect float32) model.Uniform {
	return model.Uniform{
		Model:      ModelMatrix(in, glm.Vec3{}),
		View:       ViewMatrix(in),
		Projection: ProjectionMatrix(aspect),
		CameraPos:  CameraPosition(in),
		CameraDir:  CameraDirection(in),
	}
}

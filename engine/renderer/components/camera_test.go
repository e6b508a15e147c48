package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewCameraStartsAtIdentity(t *testing.T) {
	camera := NewCamera()
	if camera.ViewMatrix() != mgl32.Ident4() {
		t.Error("fresh camera should have an identity view matrix")
	}
	if camera.Position() != (mgl32.Vec3{}) {
		t.Errorf("fresh camera at %v, want origin", camera.Position())
	}
}

func TestViewMatrixTransformsWorldToEye(t *testing.T) {
	camera := NewCamera()
	camera.SetPosition(mgl32.Vec3{0, 0, 5})

	// A point at the camera's position must map to the eye-space origin.
	eye := camera.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 5, 1})
	if !eye.ApproxEqualThreshold(mgl32.Vec4{0, 0, 0, 1}, 1e-5) {
		t.Errorf("camera position maps to %v, want eye origin", eye)
	}

	// The world origin sits 5 units in front of the camera (-Z in eye space).
	origin := camera.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !origin.ApproxEqualThreshold(mgl32.Vec4{0, 0, -5, 1}, 1e-5) {
		t.Errorf("world origin maps to %v, want (0, 0, -5, 1)", origin)
	}
}

func TestViewMatrixLazyRecalculation(t *testing.T) {
	camera := NewCamera()
	camera.SetPosition(mgl32.Vec3{1, 2, 3})
	first := camera.ViewMatrix()
	if camera.ViewMatrix() != first {
		t.Error("view matrix changed without any movement")
	}

	camera.MoveForward(1)
	if camera.ViewMatrix() == first {
		t.Error("view matrix did not change after moving")
	}
}

func TestCameraMovement(t *testing.T) {
	camera := NewCamera()

	// With no rotation, forward is -Z and right is +X.
	camera.MoveForward(2)
	if !camera.Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, -2}, 1e-5) {
		t.Errorf("after MoveForward position = %v, want (0, 0, -2)", camera.Position())
	}
	camera.MoveRight(3)
	if !camera.Position().ApproxEqualThreshold(mgl32.Vec3{3, 0, -2}, 1e-5) {
		t.Errorf("after MoveRight position = %v, want (3, 0, -2)", camera.Position())
	}
	camera.MoveUp(1)
	camera.MoveDown(1)
	if !camera.Position().ApproxEqualThreshold(mgl32.Vec3{3, 0, -2}, 1e-5) {
		t.Errorf("MoveUp/MoveDown should cancel, got %v", camera.Position())
	}

	// Yaw 180 degrees: forward flips to +Z.
	camera.Reset()
	camera.Yaw(mgl32.DegToRad(180))
	camera.MoveForward(1)
	if !camera.Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("after yaw+forward position = %v, want (0, 0, 1)", camera.Position())
	}
}

func TestPitchClamped(t *testing.T) {
	camera := NewCamera()
	limit := mgl32.DegToRad(89.0)

	camera.Pitch(mgl32.DegToRad(200))
	if got := camera.EulerRotation().X(); got != limit {
		t.Errorf("pitch = %f, want clamped to %f", got, limit)
	}
	camera.Pitch(mgl32.DegToRad(-400))
	if got := camera.EulerRotation().X(); got != -limit {
		t.Errorf("pitch = %f, want clamped to %f", got, -limit)
	}
}

func TestProjectionMatrix(t *testing.T) {
	camera := NewCamera()

	proj := camera.ProjectionMatrix(1920, 1080)
	want := mgl32.Perspective(camera.FOV, 1920.0/1080.0, camera.NearClip, camera.FarClip)
	if proj != want {
		t.Error("projection does not match mgl32.Perspective for the viewport")
	}

	// Degenerate height must not divide by zero.
	proj = camera.ProjectionMatrix(1920, 0)
	for i, v := range proj {
		if v != v { // NaN
			t.Fatalf("projection[%d] is NaN for zero height", i)
		}
	}
}

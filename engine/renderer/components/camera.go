// Package components holds reusable render-side scene objects.
package components

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera driven by a position and Euler angles
// (pitch, yaw, roll). The view matrix is rebuilt lazily: setters mark it
// dirty, accessors recalculate when needed.
type Camera struct {
	position      mgl32.Vec3
	eulerRotation mgl32.Vec3
	isDirty       bool
	viewMatrix    mgl32.Mat4

	FOV      float32
	NearClip float32
	FarClip  float32
}

func NewCamera() *Camera {
	camera := &Camera{
		FOV:      mgl32.DegToRad(60.0),
		NearClip: 0.1,
		FarClip:  1000.0,
	}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.eulerRotation = mgl32.Vec3{}
	c.position = mgl32.Vec3{}
	c.isDirty = false
	c.viewMatrix = mgl32.Ident4()
}

func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.position = position
	c.isDirty = true
}

func (c *Camera) EulerRotation() mgl32.Vec3 {
	return c.eulerRotation
}

func (c *Camera) SetEulerRotation(rotation mgl32.Vec3) {
	c.eulerRotation = rotation
	c.isDirty = true
}

// ViewMatrix recalculates the view transform if anything moved since the
// last call.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	if c.isDirty {
		rotation := mgl32.AnglesToQuat(c.eulerRotation.X(), c.eulerRotation.Y(), c.eulerRotation.Z(), mgl32.XYZ).Mat4()
		translation := mgl32.Translate3D(c.position.X(), c.position.Y(), c.position.Z())
		c.viewMatrix = translation.Mul4(rotation).Inv()
		c.isDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix builds the perspective projection for the viewport.
func (c *Camera) ProjectionMatrix(width, height uint32) mgl32.Mat4 {
	if height == 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(c.FOV, aspect, c.NearClip, c.FarClip)
}

func (c *Camera) Forward() mgl32.Vec3 {
	view := c.ViewMatrix()
	return mgl32.Vec3{-view[2], -view[6], -view[10]}.Normalize()
}

func (c *Camera) Right() mgl32.Vec3 {
	view := c.ViewMatrix()
	return mgl32.Vec3{view[0], view[4], view[8]}.Normalize()
}

func (c *Camera) MoveForward(amount float32) {
	c.position = c.position.Add(c.Forward().Mul(amount))
	c.isDirty = true
}

func (c *Camera) MoveBackward(amount float32) {
	c.position = c.position.Sub(c.Forward().Mul(amount))
	c.isDirty = true
}

func (c *Camera) MoveLeft(amount float32) {
	c.position = c.position.Sub(c.Right().Mul(amount))
	c.isDirty = true
}

func (c *Camera) MoveRight(amount float32) {
	c.position = c.position.Add(c.Right().Mul(amount))
	c.isDirty = true
}

func (c *Camera) MoveUp(amount float32) {
	c.position = c.position.Add(mgl32.Vec3{0, 1, 0}.Mul(amount))
	c.isDirty = true
}

func (c *Camera) MoveDown(amount float32) {
	c.position = c.position.Sub(mgl32.Vec3{0, 1, 0}.Mul(amount))
	c.isDirty = true
}

func (c *Camera) Yaw(amount float32) {
	c.eulerRotation[1] += amount
	c.isDirty = true
}

// Pitch rotates around the local X axis, clamped to avoid gimbal lock.
func (c *Camera) Pitch(amount float32) {
	limit := float32(mgl32.DegToRad(89.0))
	c.eulerRotation[0] = clamp(c.eulerRotation[0]+amount, -limit, limit)
	c.isDirty = true
}

func clamp(v, min, max float32) float32 {
	return float32(gomath.Min(float64(max), gomath.Max(float64(min), float64(v))))
}

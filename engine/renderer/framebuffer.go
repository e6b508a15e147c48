package renderer

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/bitzhuwei/OpenGL-Renderer/engine/core"
)

// AttachmentType names a framebuffer attachment slot.
type AttachmentType int

const (
	AttachmentColor0 AttachmentType = iota
	AttachmentDepth
)

func (a AttachmentType) glEnum() uint32 {
	switch a {
	case AttachmentColor0:
		return gl.COLOR_ATTACHMENT0
	case AttachmentDepth:
		return gl.DEPTH_ATTACHMENT
	}
	return gl.COLOR_ATTACHMENT0
}

type attachmentKind int

const (
	attachmentTexture attachmentKind = iota
	attachmentRenderBuffer
)

type attachment struct {
	kind   attachmentKind
	slot   AttachmentType
	handle uint32
}

// Framebuffer owns an off-screen render target and the image resources
// attached to it. Attachments are destroyed and recreated on resize because
// the underlying storage is immutable once allocated.
type Framebuffer struct {
	name        string
	handle      uint32
	width       uint32
	height      uint32
	attachments []attachment
}

func NewFramebuffer(name string, width, height uint32) (*Framebuffer, error) {
	if width == 0 || height == 0 {
		return nil, core.ErrInvalidDimensions
	}
	fb := &Framebuffer{name: name, width: width, height: height}
	gl.GenFramebuffers(1, &fb.handle)
	return fb, nil
}

func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.handle)
}

// Unbind restores the default framebuffer, i.e. the window surface.
func (fb *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// AttachTexture associates an already-created texture with the slot. The
// framebuffer takes ownership and will delete it on Resize/Reset/Destroy.
func (fb *Framebuffer) AttachTexture(texture uint32, slot AttachmentType) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, slot.glEnum(), gl.TEXTURE_2D, texture, 0)
	fb.attachments = append(fb.attachments, attachment{kind: attachmentTexture, slot: slot, handle: texture})
}

// AttachRenderBuffer associates an already-created renderbuffer with the
// slot, with the same ownership rules as AttachTexture.
func (fb *Framebuffer) AttachRenderBuffer(rbo uint32, slot AttachmentType) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, slot.glEnum(), gl.RENDERBUFFER, rbo)
	fb.attachments = append(fb.attachments, attachment{kind: attachmentRenderBuffer, slot: slot, handle: rbo})
}

// DisableColorOutput configures a depth-only target.
func (fb *Framebuffer) DisableColorOutput() {
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
}

// Resize drops every attachment and records the new dimensions. The owner
// re-creates and re-attaches its images afterwards.
func (fb *Framebuffer) Resize(width, height uint32) {
	fb.releaseAttachments()
	fb.width = width
	fb.height = height
}

// Reset recreates the framebuffer object itself in addition to dropping
// attachments.
func (fb *Framebuffer) Reset(width, height uint32) {
	fb.releaseAttachments()
	if fb.handle != 0 {
		gl.DeleteFramebuffers(1, &fb.handle)
	}
	gl.GenFramebuffers(1, &fb.handle)
	fb.width = width
	fb.height = height
}

func (fb *Framebuffer) Width() uint32 {
	return fb.width
}

func (fb *Framebuffer) Height() uint32 {
	return fb.height
}

func (fb *Framebuffer) releaseAttachments() {
	for _, a := range fb.attachments {
		switch a.kind {
		case attachmentTexture:
			gl.DeleteTextures(1, &a.handle)
		case attachmentRenderBuffer:
			gl.DeleteRenderbuffers(1, &a.handle)
		}
	}
	fb.attachments = fb.attachments[:0]
}

func (fb *Framebuffer) Destroy() {
	fb.releaseAttachments()
	if fb.handle != 0 {
		gl.DeleteFramebuffers(1, &fb.handle)
		fb.handle = 0
	}
}

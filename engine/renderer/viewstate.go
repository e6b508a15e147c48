package renderer

import "github.com/go-gl/mathgl/mgl32"

// TileSize is the culling granularity in pixels. The light-culling compute
// shader's local workgroup is TileSize x TileSize and must stay in sync.
const TileSize = 8

// ViewState holds the shared per-frame view data and the tile grid derived
// from the viewport. Mutated only on init and resize.
type ViewState struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4

	Width  uint32
	Height uint32

	WorkGroupsX uint32
	WorkGroupsY uint32
}

// SetViewport records new dimensions and recomputes the tile grid so that
// WorkGroupsX/Y always equal ceil(dim/TileSize).
func (v *ViewState) SetViewport(width, height uint32) {
	v.Width = width
	v.Height = height
	v.WorkGroupsX = (width + TileSize - 1) / TileSize
	v.WorkGroupsY = (height + TileSize - 1) / TileSize
}

// NumTiles is the tile count of the current grid.
func (v *ViewState) NumTiles() uint32 {
	return v.WorkGroupsX * v.WorkGroupsY
}

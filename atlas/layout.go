package atlas

import (
	"math"

	"acsforge/acserr"
	"acsforge/geom"
)

// Layout is the computed bin-packing of totalFrames equally-sized
// frames into a single atlas bounded by maxDimension on each axis.
type Layout struct {
	Columns, Rows int
	FrameSize     geom.Size
	AtlasWidth    int
	AtlasHeight   int
}

// NewLayout picks a column/row split for totalFrames frames of
// frameSize, bounded by maxDimension, and fails with
// *acserr.AtlasTooLarge if the resulting atlas would exceed that
// bound on either axis.
func NewLayout(totalFrames int, frameSize geom.Size, maxDimension int) (Layout, error) {
	maxColumns := maxDimension / frameSize.Width
	if maxColumns < 1 {
		maxColumns = 1
	}
	preferredColumns := int(math.Ceil(math.Sqrt(float64(totalFrames))))
	if preferredColumns < 1 {
		preferredColumns = 1
	}
	columns := preferredColumns
	if maxColumns < columns {
		columns = maxColumns
	}
	rows := (totalFrames + columns - 1) / columns

	atlasWidth := columns * frameSize.Width
	atlasHeight := rows * frameSize.Height

	if atlasWidth > maxDimension || atlasHeight > maxDimension {
		return Layout{}, &acserr.AtlasTooLarge{Width: atlasWidth, Height: atlasHeight, MaxDimension: maxDimension}
	}

	return Layout{
		Columns:     columns,
		Rows:        rows,
		FrameSize:   frameSize,
		AtlasWidth:  atlasWidth,
		AtlasHeight: atlasHeight,
	}, nil
}

// PositionForIndex returns the top-left pixel position of frame k
// within the atlas.
func (l Layout) PositionForIndex(k int) geom.Point {
	return geom.Point{
		X: (k % l.Columns) * l.FrameSize.Width,
		Y: (k / l.Columns) * l.FrameSize.Height,
	}
}

// Size returns the atlas's overall pixel dimensions.
func (l Layout) Size() geom.Size {
	return geom.Size{Width: l.AtlasWidth, Height: l.AtlasHeight}
}

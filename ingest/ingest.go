// Package ingest drives the end-to-end conversion of an Agent 2.0
// container blob into an atlas PNG and a manifest describing it.
package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"acsforge/acsbin"
	"acsforge/acserr"
	"acsforge/atlas"
	"acsforge/geom"
	"acsforge/manifest"
)

const defaultFallbackDuration = 1.0 / 12.0

// Options configures a single Ingest call.
type Options struct {
	CharacterName         string // overrides the name derived from SourcePath
	SourcePath            string // used only to derive CharacterName when it's empty
	FallbackFrameDuration float64
	OutputDirectory       string
	OutputPrefix          string // informational; the atlas filename is fixed
	MaxAtlasDimension     int
}

// Stats summarizes a completed ingest for CLI reporting.
type Stats struct {
	FrameCount       int
	AnimationCount   int
	AtlasBytes       int
	PaletteBytesUsed int
}

// Ingest parses blob, composites every frame into a shared atlas,
// and writes atlas.png and manifest.json into opts.OutputDirectory.
func Ingest(blob []byte, opts Options) (Stats, error) {
	if err := os.MkdirAll(opts.OutputDirectory, 0755); err != nil {
		return Stats{}, acserr.IoFailedWrap("creating output directory "+opts.OutputDirectory, err)
	}

	characterName := opts.CharacterName
	if characterName == "" {
		base := filepath.Base(opts.SourcePath)
		characterName = strings.TrimSuffix(base, filepath.Ext(base))
	}

	container, err := acsbin.Parse(blob)
	if err != nil {
		return Stats{}, err
	}

	totalFrames := 0
	for _, anim := range container.Animations {
		totalFrames += len(anim.Frames)
	}
	if totalFrames == 0 {
		return Stats{}, acserr.EmptyFramesErr("container has no animation frames")
	}

	maxDim := opts.MaxAtlasDimension
	if maxDim <= 0 {
		maxDim = 16384
	}
	canvasSize := geom.Size{Width: container.CanvasWidth, Height: container.CanvasHeight}
	layout, err := atlas.NewLayout(totalFrames, canvasSize, maxDim)
	if err != nil {
		return Stats{}, err
	}

	atlasBuf := make([]byte, layout.AtlasWidth*layout.AtlasHeight*4)

	fallback := opts.FallbackFrameDuration
	if fallback <= 0 {
		fallback = defaultFallbackDuration
	}

	frames := make([]manifest.Frame, 0, totalFrames)
	clipNames := make([]string, 0, len(container.Animations))
	clips := make([]manifest.AnimationClip, 0, len(container.Animations))

	cursor := 0
	for _, anim := range container.Animations {
		start := cursor
		for _, pf := range anim.Frames {
			canvas := atlas.Composite(pf, container.Images, container.Palette, container.TransparencyIndex, canvasSize)
			pos := layout.PositionForIndex(cursor)
			blitRGBA(atlasBuf, layout.AtlasWidth, pos, canvas, canvasSize)

			duration := fallback
			if pf.DurationTicks > 0 {
				duration = float64(pf.DurationTicks) / 100.0
				if duration < 1.0/120.0 {
					duration = 1.0 / 120.0
				}
			}

			frames = append(frames, manifest.Frame{
				Index:       cursor,
				ImageName:   "atlas.png",
				SourceRect:  geom.Rect{X: pos.X, Y: pos.Y, Width: canvasSize.Width, Height: canvasSize.Height},
				TrimmedRect: geom.Rect{X: 0, Y: 0, Width: canvasSize.Width, Height: canvasSize.Height},
				Offset:      geom.Point{X: 0, Y: 0},
				Size:        geom.Size{Width: canvasSize.Width, Height: canvasSize.Height},
				Duration:    duration,
			})
			cursor++
		}
		if cursor == start {
			continue
		}
		clipNames = append(clipNames, anim.Name)
		clips = append(clips, manifest.AnimationClip{
			StartFrame: start,
			FrameCount: cursor - start,
			Loops:      true,
		})
	}

	if len(clips) == 0 {
		clipNames = []string{"all"}
		clips = []manifest.AnimationClip{{StartFrame: 0, FrameCount: len(frames), Loops: true}}
	}
	names := manifest.UniqueNames(clipNames)
	for i := range clips {
		clips[i].Name = names[i]
	}

	m := &manifest.Manifest{
		CharacterName: characterName,
		FrameCellSize: canvasSize,
		Frames:        frames,
		Animations:    clips,
	}

	if err := encodeAtlasPNG(atlasBuf, layout.AtlasWidth, layout.AtlasHeight, filepath.Join(opts.OutputDirectory, "atlas.png")); err != nil {
		return Stats{}, err
	}
	if err := manifest.Save(m, manifest.DefaultPath(opts.OutputDirectory)); err != nil {
		return Stats{}, err
	}

	paletteUsed := 0
	for _, p := range container.Palette {
		if p != 0 {
			paletteUsed++
		}
	}

	return Stats{
		FrameCount:       len(frames),
		AnimationCount:   len(clips),
		AtlasBytes:       len(atlasBuf),
		PaletteBytesUsed: paletteUsed * 4,
	}, nil
}

// blitRGBA copies a canvasSize.Width*canvasSize.Height RGBA8 frame
// composited at the origin into atlasBuf at pos.
func blitRGBA(atlasBuf []byte, atlasWidth int, pos geom.Point, frame []byte, frameSize geom.Size) {
	for y := 0; y < frameSize.Height; y++ {
		srcRow := y * frameSize.Width * 4
		dstRow := ((pos.Y+y)*atlasWidth + pos.X) * 4
		copy(atlasBuf[dstRow:dstRow+frameSize.Width*4], frame[srcRow:srcRow+frameSize.Width*4])
	}
}

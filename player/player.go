// Package player implements a time-driven playback state machine
// over a manifest's frames and animation clips.
package player

import (
	"acsforge/acserr"
	"acsforge/manifest"
)

const minFrameDuration = 1.0 / 120.0

// Player advances a local frame index within a selected clip in
// response to externally-supplied wall-clock deltas. It never
// blocks, sleeps or allocates in Update.
type Player struct {
	m *manifest.Manifest

	clip       *manifest.AnimationClip
	localIndex int
	elapsed    float64

	loopingOverride *bool
	loopDelay       float64
	pendingDelay    float64
}

// New constructs a player over m. If m has no clips, a single
// synthetic looping clip named "all" covering every frame is
// synthesized. If initialClip is non-empty, play(initialClip, true) is
// applied; an unknown name fails with *acserr.UnknownAnimation.
func New(m *manifest.Manifest, initialClip string) (*Player, error) {
	if len(m.Frames) == 0 {
		return nil, acserr.EmptyFramesErr("cannot play a manifest with no frames")
	}

	clips := m.Animations
	if len(clips) == 0 {
		clips = []manifest.AnimationClip{{
			Name:       "all",
			StartFrame: 0,
			FrameCount: len(m.Frames),
			Loops:      true,
		}}
	}

	p := &Player{m: &manifest.Manifest{
		CharacterName: m.CharacterName,
		FrameCellSize: m.FrameCellSize,
		Frames:        m.Frames,
		Animations:    clips,
	}}
	p.clip = &p.m.Animations[0]

	if initialClip != "" {
		if err := p.Play(initialClip, true); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Play selects clip name as current. If restart, playback resets to
// the clip's first frame and any pending loop delay is cleared;
// otherwise the current local frame index is clamped into the new
// clip's range.
func (p *Player) Play(name string, restart bool) error {
	clip := p.m.FindAnimation(name)
	if clip == nil {
		return &acserr.UnknownAnimation{Name: name}
	}
	p.clip = clip
	if restart {
		p.localIndex = 0
		p.elapsed = 0
		p.pendingDelay = 0
		return nil
	}
	if p.localIndex >= clip.FrameCount {
		p.localIndex = clip.FrameCount - 1
	}
	if p.localIndex < 0 {
		p.localIndex = 0
	}
	return nil
}

// ConfigurePlayback overrides the current clip's loop behavior and
// sets the delay held on the last frame before looping back to the
// first. Negative loopDelay is clamped to zero.
func (p *Player) ConfigurePlayback(looping bool, loopDelay float64) {
	p.loopingOverride = &looping
	if loopDelay < 0 {
		loopDelay = 0
	}
	p.loopDelay = loopDelay
}

// CurrentAnimationName returns the name of the clip currently
// selected for playback.
func (p *Player) CurrentAnimationName() string {
	return p.clip.Name
}

// CurrentLocalFrameIndex returns the frame index relative to the
// start of the current clip.
func (p *Player) CurrentLocalFrameIndex() int {
	return p.localIndex
}

// CurrentGlobalFrameIndex returns the index into the manifest's
// overall frame list of the frame currently displayed.
func (p *Player) CurrentGlobalFrameIndex() int {
	return p.clip.StartFrame + p.localIndex
}

// CurrentFrame returns the manifest frame currently displayed.
func (p *Player) CurrentFrame() manifest.Frame {
	return p.m.Frames[p.CurrentGlobalFrameIndex()]
}

func (p *Player) shouldLoop() bool {
	if p.loopingOverride != nil {
		return *p.loopingOverride
	}
	return p.clip.Loops
}

func (p *Player) frameDuration(localIndex int) float64 {
	d := p.m.Frames[p.clip.StartFrame+localIndex].Duration
	if d < minFrameDuration {
		return minFrameDuration
	}
	return d
}

// Update advances playback by dt seconds. Non-positive dt is a no-op.
// Update never returns an error: unknown-clip failures can only occur
// at construction or on Play.
func (p *Player) Update(dt float64) {
	if dt <= 0 {
		return
	}
	remaining := dt
	loop := p.shouldLoop()

	for remaining > 0 {
		if p.pendingDelay > 0 {
			consumed := remaining
			if p.pendingDelay < consumed {
				consumed = p.pendingDelay
			}
			p.pendingDelay -= consumed
			remaining -= consumed
			if p.pendingDelay > 0 {
				return
			}
			p.localIndex = 0
			p.elapsed = 0
			continue
		}

		cd := p.frameDuration(p.localIndex)
		step := cd - p.elapsed
		if remaining < step {
			p.elapsed += remaining
			return
		}

		remaining -= step
		p.elapsed = 0
		if p.localIndex+1 < p.clip.FrameCount {
			p.localIndex++
			continue
		}
		if loop {
			if p.loopDelay > 0 {
				p.pendingDelay = p.loopDelay
				continue
			}
			p.localIndex = 0
			continue
		}
		p.localIndex = p.clip.FrameCount - 1
		return
	}
}

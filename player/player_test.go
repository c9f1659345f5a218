package player

import (
	"testing"

	"acsforge/acserr"
	"acsforge/manifest"
)

func framesOfDuration(n int, d float64) []manifest.Frame {
	out := make([]manifest.Frame, n)
	for i := range out {
		out[i] = manifest.Frame{Index: i, Duration: d}
	}
	return out
}

func TestNewFailsOnEmptyFrames(t *testing.T) {
	_, err := New(&manifest.Manifest{}, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if e, ok := err.(*acserr.Error); !ok || e.Kind != acserr.EmptyFrames {
		t.Fatalf("expected EmptyFrames error, got %T (%v)", err, err)
	}
}

func TestNewSynthesizesAllClip(t *testing.T) {
	m := &manifest.Manifest{Frames: framesOfDuration(3, 0.1)}
	p, err := New(m, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.CurrentAnimationName() != "all" {
		t.Fatalf("clip name = %q, want all", p.CurrentAnimationName())
	}
}

func TestNewUnknownInitialClipFails(t *testing.T) {
	m := &manifest.Manifest{Frames: framesOfDuration(1, 0.1)}
	_, err := New(m, "Nope")
	if _, ok := err.(*acserr.UnknownAnimation); !ok {
		t.Fatalf("expected *UnknownAnimation, got %T (%v)", err, err)
	}
}

// S1 — loops within current animation.
func TestS1LoopsWithinAnimation(t *testing.T) {
	m := &manifest.Manifest{
		Frames:     framesOfDuration(3, 0.1),
		Animations: []manifest.AnimationClip{{Name: "all", StartFrame: 0, FrameCount: 3, Loops: true}},
	}
	p, err := New(m, "")
	if err != nil {
		t.Fatal(err)
	}
	p.Update(0.1)
	if p.CurrentLocalFrameIndex() != 1 {
		t.Fatalf("after update 1: li = %d, want 1", p.CurrentLocalFrameIndex())
	}
	p.Update(0.1)
	if p.CurrentLocalFrameIndex() != 2 {
		t.Fatalf("after update 2: li = %d, want 2", p.CurrentLocalFrameIndex())
	}
	p.Update(0.1)
	if p.CurrentLocalFrameIndex() != 0 {
		t.Fatalf("after update 3: li = %d, want 0", p.CurrentLocalFrameIndex())
	}
}

// S2 — typed play and idle frame.
func TestS2PlayAndIdleFrame(t *testing.T) {
	m := &manifest.Manifest{
		Frames:     framesOfDuration(1, 0.1),
		Animations: []manifest.AnimationClip{{Name: "Greeting", StartFrame: 0, FrameCount: 1, Loops: true}},
	}
	p, err := New(m, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Play("Greeting", true); err != nil {
		t.Fatal(err)
	}
	if p.CurrentAnimationName() != "Greeting" || p.CurrentGlobalFrameIndex() != 0 {
		t.Fatalf("name=%q globalIndex=%d", p.CurrentAnimationName(), p.CurrentGlobalFrameIndex())
	}
}

// S3 — play once.
func TestS3PlayOnce(t *testing.T) {
	m := &manifest.Manifest{
		Frames:     framesOfDuration(2, 0.1),
		Animations: []manifest.AnimationClip{{Name: "Greeting", StartFrame: 0, FrameCount: 2, Loops: true}},
	}
	p, err := New(m, "Greeting")
	if err != nil {
		t.Fatal(err)
	}
	p.ConfigurePlayback(false, 0)
	p.Update(1.0)
	if p.CurrentGlobalFrameIndex() != 1 {
		t.Fatalf("globalIndex = %d, want 1", p.CurrentGlobalFrameIndex())
	}
	p.Update(1.0)
	if p.CurrentGlobalFrameIndex() != 1 {
		t.Fatalf("globalIndex after further update = %d, want still 1", p.CurrentGlobalFrameIndex())
	}
}

// S4 — loop delay.
func TestS4LoopDelay(t *testing.T) {
	m := &manifest.Manifest{
		Frames:     framesOfDuration(2, 0.1),
		Animations: []manifest.AnimationClip{{Name: "Greeting", StartFrame: 0, FrameCount: 2, Loops: true}},
	}
	p, err := New(m, "Greeting")
	if err != nil {
		t.Fatal(err)
	}
	p.ConfigurePlayback(true, 0.2)

	p.Update(0.2)
	if p.CurrentLocalFrameIndex() != 1 {
		t.Fatalf("after 0.2: li = %d, want 1", p.CurrentLocalFrameIndex())
	}
	p.Update(0.1)
	if p.CurrentLocalFrameIndex() != 1 {
		t.Fatalf("after +0.1: li = %d, want still 1", p.CurrentLocalFrameIndex())
	}
	p.Update(0.19)
	if p.CurrentLocalFrameIndex() != 0 {
		t.Fatalf("after +0.19: li = %d, want 0", p.CurrentLocalFrameIndex())
	}
	p.Update(0.02)
	if p.CurrentLocalFrameIndex() != 1 {
		t.Fatalf("after +0.02: li = %d, want 1", p.CurrentLocalFrameIndex())
	}
}

func TestUpdateIgnoresNonPositiveDelta(t *testing.T) {
	m := &manifest.Manifest{
		Frames:     framesOfDuration(2, 0.1),
		Animations: []manifest.AnimationClip{{Name: "all", StartFrame: 0, FrameCount: 2, Loops: true}},
	}
	p, err := New(m, "")
	if err != nil {
		t.Fatal(err)
	}
	p.Update(0)
	p.Update(-1)
	if p.CurrentLocalFrameIndex() != 0 {
		t.Fatalf("li = %d, want 0", p.CurrentLocalFrameIndex())
	}
}

func TestPlayClampsLocalIndexWithoutRestart(t *testing.T) {
	m := &manifest.Manifest{
		Frames: framesOfDuration(5, 0.1),
		Animations: []manifest.AnimationClip{
			{Name: "Big", StartFrame: 0, FrameCount: 5, Loops: true},
			{Name: "Small", StartFrame: 0, FrameCount: 2, Loops: true},
		},
	}
	p, err := New(m, "Big")
	if err != nil {
		t.Fatal(err)
	}
	p.Update(0.1)
	p.Update(0.1)
	p.Update(0.1)
	if p.CurrentLocalFrameIndex() != 3 {
		t.Fatalf("precondition: li = %d, want 3", p.CurrentLocalFrameIndex())
	}
	if err := p.Play("Small", false); err != nil {
		t.Fatal(err)
	}
	if p.CurrentLocalFrameIndex() != 1 {
		t.Fatalf("clamped li = %d, want 1 (Small.FrameCount-1)", p.CurrentLocalFrameIndex())
	}
}

func TestPlayUnknownNameFails(t *testing.T) {
	m := &manifest.Manifest{
		Frames:     framesOfDuration(1, 0.1),
		Animations: []manifest.AnimationClip{{Name: "all", StartFrame: 0, FrameCount: 1, Loops: true}},
	}
	p, err := New(m, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Play("Nope", true); err == nil {
		t.Fatal("expected error")
	}
}

func TestMinimumFrameDurationEnforced(t *testing.T) {
	m := &manifest.Manifest{
		Frames:     []manifest.Frame{{Duration: 0}, {Duration: 0}},
		Animations: []manifest.AnimationClip{{Name: "all", StartFrame: 0, FrameCount: 2, Loops: true}},
	}
	p, err := New(m, "")
	if err != nil {
		t.Fatal(err)
	}
	p.Update(minFrameDuration - 1e-6)
	if p.CurrentLocalFrameIndex() != 0 {
		t.Fatalf("li = %d, want 0 (frame should not have advanced yet)", p.CurrentLocalFrameIndex())
	}
	p.Update(2e-6)
	if p.CurrentLocalFrameIndex() != 1 {
		t.Fatalf("li = %d, want 1", p.CurrentLocalFrameIndex())
	}
}

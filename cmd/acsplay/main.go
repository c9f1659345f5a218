// acsplay drives a manifest's frame player headlessly for a fixed
// duration, printing the sequence of frames it would have shown. It
// exists to exercise the player package without a renderer attached.
package main

import (
	"flag"
	"fmt"
	"os"

	"acsforge/manifest"
	"acsforge/player"
)

func main() {
	var (
		manifestPath = flag.String("manifest", "", "path to manifest.json (required)")
		clip         = flag.String("clip", "", "animation clip to play (default: the manifest's first clip)")
		seconds      = flag.Float64("seconds", 5, "how many simulated seconds to run")
		tickHz       = flag.Float64("hz", 60, "simulated tick rate")
		loop         = flag.Bool("loop", true, "override the clip's own looping flag")
	)
	flag.Parse()

	if *manifestPath == "" {
		fmt.Fprintln(os.Stderr, "usage: acsplay -manifest <path> [-clip name] [-seconds 5] [-hz 60]")
		os.Exit(2)
	}

	m, err := manifest.Load(*manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load manifest: %v\n", err)
		os.Exit(1)
	}

	p, err := player.New(m, *clip)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start player: %v\n", err)
		os.Exit(1)
	}
	p.ConfigurePlayback(*loop, 0)

	dt := 1.0 / *tickHz
	ticks := int(*seconds / dt)
	lastGlobal := -1
	for i := 0; i < ticks; i++ {
		p.Update(dt)
		if g := p.CurrentGlobalFrameIndex(); g != lastGlobal {
			fmt.Printf("t=%.3fs clip=%s localFrame=%d globalFrame=%d\n",
				float64(i+1)*dt, p.CurrentAnimationName(), p.CurrentLocalFrameIndex(), g)
			lastGlobal = g
		}
	}
}

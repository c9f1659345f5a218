// acsforge batch-converts Agent 2.0 .acs character files into atlas
// PNG + manifest.json pairs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"
	"golang.org/x/time/rate"

	"acsforge/ingest"
)

var (
	errorLogger *log.Logger
	debugLogger *log.Logger
)

// setupLogging mirrors the split error/debug log convention: errors
// always go to stderr and a timestamped file under outDir/logs;
// debug lines are opt-in and stdout-only.
func setupLogging(debug bool, outDir string) {
	logDir := filepath.Join(outDir, "logs")
	var errWriter io.Writer = os.Stderr
	if err := os.MkdirAll(logDir, 0755); err == nil {
		ts := time.Now().Format("20060102-150405")
		if f, err := os.Create(filepath.Join(logDir, fmt.Sprintf("error-%s.log", ts))); err == nil {
			errWriter = io.MultiWriter(os.Stderr, f)
		}
	}
	errorLogger = log.New(errWriter, "", log.LstdFlags)
	if debug {
		debugLogger = log.New(os.Stdout, "debug: ", log.LstdFlags)
	}
}

func logError(format string, v ...interface{}) {
	if errorLogger != nil {
		errorLogger.Printf(format, v...)
	}
}

func logDebug(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}

func main() {
	var (
		character   = flag.String("char", "", "override the derived character name for a single-file input")
		fallbackFPS = flag.Float64("fallback-fps", 12, "frames per second assumed for frames with an unknown duration")
		outDir      = flag.String("out", "", "output directory (required)")
		outPrefix   = flag.String("prefix", "", "informational output filename prefix")
		maxDim      = flag.Int("max-dim", 16384, "maximum atlas width/height in pixels")
		debug       = flag.Bool("debug", false, "verbose/debug logging")
		jobs        = flag.Int("jobs", 4, "maximum number of files converted concurrently")
	)
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 || *outDir == "" {
		fmt.Fprintln(os.Stderr, "usage: acsforge [flags] -out <dir> <file.acs> [more.acs ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	setupLogging(*debug, *outDir)

	start := time.Now()
	limiter := rate.NewLimiter(rate.Every(200*time.Millisecond), 1)
	swg := sizedwaitgroup.New(*jobs)

	var failures int32
	for _, src := range inputs {
		src := src
		swg.Add()
		go func() {
			defer swg.Done()
			if err := convertOne(src, *outDir, *character, *outPrefix, *maxDim, 1.0 / *fallbackFPS, limiter); err != nil {
				logError("%s: %v", src, err)
				atomic.AddInt32(&failures, 1)
			}
		}()
	}
	swg.Wait()

	elapsed := durafmt.Parse(time.Since(start).Round(time.Millisecond)).LimitFirstN(2)
	fmt.Printf("converted %d file(s) in %s\n", len(inputs)-int(failures), elapsed)

	if failures > 0 {
		fmt.Printf("%d file(s) failed; see stderr for details\n", failures)
		os.Exit(1)
	}
}

func convertOne(src, outDir, character, prefix string, maxDim int, fallback float64, limiter *rate.Limiter) error {
	blob, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	base := filepath.Base(src)
	name := character
	if name == "" {
		name = base[:len(base)-len(filepath.Ext(base))]
	}
	dest := filepath.Join(outDir, name)

	stats, err := ingest.Ingest(blob, ingest.Options{
		CharacterName:         character,
		SourcePath:            src,
		FallbackFrameDuration: fallback,
		OutputDirectory:       dest,
		OutputPrefix:          prefix,
		MaxAtlasDimension:     maxDim,
	})
	if err != nil {
		return err
	}

	if limiter.Allow() {
		logDebug("%s -> %s: %d frames, %d animations, atlas %s",
			base, dest, stats.FrameCount, stats.AnimationCount, humanize.Bytes(uint64(stats.AtlasBytes)))
	}
	return nil
}

// Command beebgo boots the emulator from a ROM image, hosts it in an
// ebiten window, and optionally attaches the external debugger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"beebgo/internal/debugger"
	"beebgo/internal/emulator"
	"beebgo/internal/video"
)

const (
	frameWidth  = 320
	frameHeight = 256

	// cyclesPerSecond is the emulated clock rate: 500ns per cycle = 2MHz.
	cyclesPerSecond = 2_000_000
	targetFPS       = 60
	cyclesPerFrame  = cyclesPerSecond / targetFPS

	// frameBudget bounds how long Update may spend catching the emulated
	// clock up to real time before yielding back to ebiten, per spec.
	frameBudget = 2 * time.Millisecond
)

func main() {
	romPath := flag.String("rom", "", "path to an OS ROM image, blitted at 0xC000")
	pagedROMPath := flag.String("paged-rom", "", "path to a sideways ROM image, registered as paged-ROM bank 0")
	scale := flag.Int("scale", 2, "window scale factor")
	debug := flag.Bool("debug", false, "attach the external debugger TUI")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "beebgo: -rom is required")
		os.Exit(1)
	}

	emu := emulator.New(video.PatternFont{}, frameWidth)

	rom, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "beebgo: reading rom: %v\n", err)
		os.Exit(1)
	}
	emu.PlaceROMAt(0xC000, rom)

	if *pagedROMPath != "" {
		paged, err := os.ReadFile(*pagedROMPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "beebgo: reading paged rom: %v\n", err)
			os.Exit(1)
		}
		emu.AddPagedROM(paged)
	}

	emu.Initialize()

	game := &hostGame{
		emu: emu,
		fb:  video.NewFrameBuffer(frameWidth, frameHeight),
	}

	if *debug {
		ctx, cancel := context.WithCancel(context.Background())
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)
		go func() {
			<-sigCh
			cancel()
		}()

		backend := debugger.NewBackend(emu, os.Stdout)
		go backend.Run(ctx.Done())

		go func() {
			if err := debugger.Frontend(ctx, backend, backend.Responses()); err != nil {
				fmt.Fprintf(os.Stderr, "beebgo: debugger frontend: %v\n", err)
			}
		}()
		game.debugging = true
	}

	ebiten.SetWindowSize(frameWidth*(*scale), frameHeight*(*scale))
	ebiten.SetWindowTitle("beebgo")

	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintf(os.Stderr, "beebgo: %v\n", err)
		os.Exit(1)
	}
}

// hostGame is the ebiten.Game host shell: it owns frame pacing (the core
// itself has no clock of its own) and forwards keyboard events into the
// VIA's keyboard ring.
type hostGame struct {
	emu       *emulator.Emulator
	fb        *video.FrameBuffer
	image     *ebiten.Image
	debugging bool
}

func (g *hostGame) Update() error {
	if g.debugging {
		// The debugger backend drives stepping; the host shell just
		// keeps the window alive and forwards keys.
		g.pollKeys()
		return nil
	}

	deadline := time.Now().Add(frameBudget)
	cyclesRun := 0

	for cyclesRun < cyclesPerFrame && time.Now().Before(deadline) {
		result, cycles, err := g.emu.Step(g.fb)
		if err != nil {
			fmt.Fprintf(os.Stderr, "beebgo: cpu error: %v\n", err)
			return ebiten.Termination
		}
		if result == emulator.Exit {
			return ebiten.Termination
		}
		cyclesRun += cycles
	}

	g.pollKeys()

	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) pollKeys() {
	for _, r := range ebiten.AppendInputChars(nil) {
		if r > 0 && r <= 0xFF {
			g.emu.KeyDown(uint32(r))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.emu.ClearKeyboardBuffer()
	}
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(frameWidth, frameHeight)
	}
	g.image.WritePixels(g.fb.Pix)
	screen.DrawImage(g.image, nil)
}

func (g *hostGame) Layout(_, _ int) (int, int) {
	return frameWidth, frameHeight
}

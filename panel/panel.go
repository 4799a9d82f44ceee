// Package panel is an ebiten-driven front panel for a kenbak.Machine:
// eight data-bit buttons, the four control-lamp modes (input, address,
// memory, run) and the six original control buttons (address
// display/set, read/store memory, start/stop), modeled on the button
// and lamp layout in the reference PicoKenbak firmware and rendered
// with ebiten instead of GPIO pins.
package panel

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/mkessler/kenbak1/kenbak"
)

// lamp mirrors the PicoKenbak firmware's four control lamps plus an
// "all off" state, which start switches to once a run ends and in
// which the data LEDs show OUTPUT.
type lamp int

const (
	lampInput lamp = iota
	lampAddress
	lampMemory
	lampRun
	lampAllOff
)

// dataKeys set bits 0-7 of the INPUT register on press (a press never
// clears a bit), least significant bit first, matching the firmware's
// pushButtonPins[0:8].
var dataKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

const (
	keyAddressSet     = ebiten.KeyA
	keyAddressDisplay = ebiten.KeyD
	keyStoreMemory    = ebiten.KeyW
	keyReadMemory     = ebiten.KeyR
	keyStart          = ebiten.KeyEnter
	keyStop           = ebiten.KeyEscape
)

// Panel implements both kenbak.Host and the ebiten.Game interface: the
// machine drives it for stop/throttle decisions, and ebiten drives its
// Update/Draw loop independently at roughly 60Hz.
type Panel struct {
	m *kenbak.Machine

	lamp    lamp
	running bool
	stop    bool

	prevData [8]bool
	prevCtrl map[ebiten.Key]bool
}

// New returns a Panel with its own Machine, wired as that Machine's
// Host so Run's throttle and stop-polling actually reach this panel
// rather than a no-op default. It does not start the machine; the
// user presses the start key once the window is up.
func New() *Panel {
	ebiten.SetWindowSize(480, 240)
	ebiten.SetWindowTitle("KENBAK-1")

	p := &Panel{
		lamp: lampInput,
		prevCtrl: map[ebiten.Key]bool{
			keyAddressSet: false, keyAddressDisplay: false,
			keyStoreMemory: false, keyReadMemory: false,
			keyStart: false, keyStop: false,
		},
	}
	p.m = kenbak.New(p)
	return p
}

// Machine returns the Panel's underlying machine, for hosts that need
// to preload a program before the GUI loop starts.
func (p *Panel) Machine() *kenbak.Machine { return p.m }

// StopRequested implements kenbak.Host.
func (p *Panel) StopRequested() bool { return p.stop }

// Throttle implements kenbak.Host, approximating the reference
// machine's roughly 1000 instructions/second.
func (p *Panel) Throttle() { time.Sleep(time.Millisecond) }

// Layout implements ebiten.Game.
func (p *Panel) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 480, 240
}

// Update implements ebiten.Game: it polls the data and control keys
// for newly-pressed edges and applies the button semantics from the
// reference firmware's main loop. While the machine is running only
// the stop key is polled.
func (p *Panel) Update() error {
	if p.running {
		pressed := ebiten.IsKeyPressed(keyStop)
		if pressed && !p.prevCtrl[keyStop] {
			p.pressControl(keyStop)
		}
		p.prevCtrl[keyStop] = pressed
		return nil
	}

	for i, key := range dataKeys {
		pressed := ebiten.IsKeyPressed(key)
		if pressed && !p.prevData[i] {
			p.m.Poke(kenbak.Input, setBit(p.m.Peek(kenbak.Input), uint8(i), 1))
		}
		p.prevData[i] = pressed
	}

	for key := range p.prevCtrl {
		pressed := ebiten.IsKeyPressed(key)
		newlyPressed := pressed && !p.prevCtrl[key]
		p.prevCtrl[key] = pressed
		if !newlyPressed {
			continue
		}
		p.pressControl(key)
	}

	return nil
}

func (p *Panel) pressControl(key ebiten.Key) {
	switch key {
	case keyAddressSet:
		p.m.Poke(kenbak.RegP, p.m.Peek(kenbak.Input))
		p.m.Poke(kenbak.Input, 0)
	case keyAddressDisplay:
		p.lamp = lampAddress
	case keyStoreMemory:
		addr := p.m.Peek(kenbak.RegP)
		p.m.Poke(addr, p.m.Peek(kenbak.Input))
		p.m.Poke(kenbak.RegP, addr+1)
		p.m.Poke(kenbak.Input, 0)
	case keyReadMemory:
		p.lamp = lampMemory
	case keyStart:
		p.start()
	case keyStop:
		p.stop = true
		p.m.RequestStop()
	}
}

// start launches the machine's Run loop in its own goroutine, since
// ebiten's Update must never block, and flips the lamp back to
// all-off once the machine halts or is stopped.
func (p *Panel) start() {
	p.lamp = lampRun
	p.running = true
	p.stop = false

	go func() {
		p.m.Run()
		p.lamp = lampAllOff
		p.running = false
	}()
}

// Draw implements ebiten.Game, rendering the eight data LEDs (driven
// by whichever register the current lamp mode selects, matching the
// firmware's lampToLightUp dispatch) and a status line.
func (p *Panel) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	var bits uint8
	switch p.lamp {
	case lampInput:
		bits = p.m.Peek(kenbak.Input)
	case lampAddress:
		bits = p.m.Peek(kenbak.RegP)
	case lampMemory:
		addr := p.m.Peek(kenbak.RegP)
		bits = p.m.Peek(addr)
	case lampAllOff:
		bits = p.m.Peek(kenbak.Output)
	}

	const ledSize, gap = 24, 12
	for i := 0; i < 8; i++ {
		on := getBit(bits, uint8(7-i))
		c := color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
		if on == 1 {
			c = color.RGBA{R: 0xFF, G: 0x40, B: 0x40, A: 0xFF}
		}
		x := gap + i*(ledSize+gap)
		drawSquare(screen, x, gap, ledSize, c)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("mode: %s", p.lamp), gap, ledSize+gap*3)
}

func drawSquare(img *ebiten.Image, x, y, size int, c color.Color) {
	sub := img.SubImage(image.Rect(x, y, x+size, y+size)).(*ebiten.Image)
	sub.Fill(c)
}

func (l lamp) String() string {
	switch l {
	case lampInput:
		return "input"
	case lampAddress:
		return "address"
	case lampMemory:
		return "memory"
	case lampRun:
		return "run"
	default:
		return "off"
	}
}

func getBit(b, i uint8) uint8 { return (b >> i) & 1 }

func setBit(b, i, v uint8) uint8 {
	if v != 0 {
		return b | (1 << i)
	}
	return b &^ (1 << i)
}

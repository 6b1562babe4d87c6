// Package terminal shows generated maps in the terminal and regenerates
// them on key presses or configuration changes.
package terminal

import (
	"context"
	"fmt"
	"topo/canvas"
	"topo/core"
	"topo/generator"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Grid size limits for the +/- keys.
const (
	MinGridSize = 2
	MaxGridSize = 40
)

// quitEvent asks the loop to stop, posted when the context is cancelled.
type quitEvent struct{}

// Preview renders a result onto a tcell screen.
type Preview struct {
	screen tcell.Screen
	gen    *generator.Generator
	logger *zap.Logger
	style  canvas.Style

	// Owned by the event loop.
	params core.Params
	result *core.Result
	drawnW int
	drawnH int

	// afterDraw observes every completed frame. Nil outside tests.
	afterDraw func(core.Params)
}

// NewPreview creates a preview for params. The screen is initialized by Run.
func NewPreview(screen tcell.Screen, gen *generator.Generator, params core.Params, logger *zap.Logger) *Preview {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Preview{
		screen: screen,
		gen:    gen,
		logger: logger,
		style:  canvas.DefaultStyle(),
		params: params,
	}
}

// Run owns the screen until q, Esc or Ctrl-C is pressed or ctx is done.
func (p *Preview) Run(ctx context.Context) error {
	if err := p.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer p.screen.Fini()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = p.screen.PostEvent(tcell.NewEventInterrupt(quitEvent{}))
		case <-done:
		}
	}()

	p.regenerate()
	p.draw()

	for {
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			if w, h := ev.Size(); w == p.drawnW && h == p.drawnH {
				p.screen.Sync()
				continue
			}
			p.draw()
		case *tcell.EventKey:
			if p.handleKey(ev) {
				return nil
			}
			p.draw()
		case *tcell.EventInterrupt:
			switch data := ev.Data().(type) {
			case quitEvent:
				return ctx.Err()
			case core.Params:
				p.params = data
				p.regenerate()
				p.draw()
			}
		}
	}
}

// Reload regenerates the map with new parameters. It is safe to call from
// any goroutine while Run is active.
func (p *Preview) Reload(params core.Params) error {
	return p.screen.PostEvent(tcell.NewEventInterrupt(params))
}

// handleKey applies a key press and reports whether the preview should exit.
func (p *Preview) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'r':
		p.params.Seed = generator.NewSeed()
	case '+', '=':
		if p.params.GridSize >= MaxGridSize {
			return false
		}
		p.params.GridSize++
	case '-':
		if p.params.GridSize <= MinGridSize {
			return false
		}
		p.params.GridSize--
	case 'n':
		if p.params.Noise == core.NoisePerlin {
			p.params.Noise = core.NoiseSimplex
		} else {
			p.params.Noise = core.NoisePerlin
		}
	default:
		return false
	}
	p.regenerate()
	return false
}

func (p *Preview) regenerate() {
	p.result = p.gen.Generate(p.params)
	p.logger.Debug("preview regenerated",
		zap.Int64("seed", p.params.Seed),
		zap.Float64("grid_size", p.params.GridSize),
		zap.String("noise", string(p.params.Noise)))
}

// draw paints the map above a one line status bar.
func (p *Preview) draw() {
	p.screen.Clear()
	w, h := p.screen.Size()
	p.drawnW, p.drawnH = w, h
	if w > 0 && h > 1 && p.result != nil {
		c, err := canvas.Rasterize(p.result, w, h-1, p.style)
		if err == nil {
			for y, row := range c.Matrix() {
				for x, r := range row {
					if r == '\x00' || r == ' ' {
						continue
					}
					p.screen.SetContent(x, y, r, nil, p.cellStyle(r))
				}
			}
		}
	}
	p.drawStatus(w, h)
	p.screen.Show()

	if p.afterDraw != nil {
		p.afterDraw(p.params)
	}
}

func (p *Preview) drawStatus(w, h int) {
	if h < 1 {
		return
	}
	status := fmt.Sprintf(" seed %d | grid %g | %s | lakes %d peaks %d | r reseed  +/- grid  n noise  q quit",
		p.params.Seed, p.params.GridSize, p.params.Noise, len(p.result.Lakes), len(p.result.Peaks))
	status = canvas.FitText(status, w, "…")
	bar := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		p.screen.SetContent(x, h-1, r, nil, bar)
		x++
	}
	for ; x < w; x++ {
		p.screen.SetContent(x, h-1, ' ', nil, bar)
	}
}

func (p *Preview) cellStyle(r rune) tcell.Style {
	s := tcell.StyleDefault
	switch r {
	case p.style.Stream, p.style.Lake:
		return s.Foreground(tcell.ColorBlue)
	case p.style.Peak:
		return s.Foreground(tcell.ColorWhite).Bold(true)
	}
	for _, lr := range p.style.Levels {
		if r == lr {
			return s.Foreground(tcell.ColorOlive)
		}
	}
	return s.Foreground(tcell.ColorSilver)
}

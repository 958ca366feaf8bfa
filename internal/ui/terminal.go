package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"go.uber.org/zap"
)

// canvas is the part of tcell.Screen the terminal sink draws with.
type canvas interface {
	Size() (width, height int)
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
	Fini()
}

// TerminalText draws the centre text in the middle of a tcell screen.
type TerminalText struct {
	screen canvas
	style  tcell.Style
	log    *zap.Logger
	last   string
}

// NewTerminalText takes over the terminal. Close restores it.
func NewTerminalText(log *zap.Logger) (*TerminalText, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return newTerminalTextOn(s, log), nil
}

func newTerminalTextOn(screen canvas, log *zap.Logger) *TerminalText {
	return &TerminalText{
		screen: screen,
		style:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		log:    log,
	}
}

func (t *TerminalText) UpdateCenterText(text string) {
	t.last = text
	t.screen.Clear()
	if text != "" {
		w, h := t.screen.Size()
		x := (w - uniseg.StringWidth(text)) / 2
		if x < 0 {
			x = 0
		}
		y := h / 2
		// one cell per grapheme cluster; combining marks ride on their base
		g := uniseg.NewGraphemes(text)
		for g.Next() && x < w {
			rs := g.Runes()
			var combining []rune
			if len(rs) > 1 {
				combining = rs[1:]
			}
			t.screen.SetContent(x, y, rs[0], combining, t.style)
			x += g.Width()
		}
	}
	t.screen.Show()
	t.log.Debug("center text drawn", zap.String("text", text))
}

// Text returns what is currently shown.
func (t *TerminalText) Text() string { return t.last }

// Close restores the terminal.
func (t *TerminalText) Close() {
	t.screen.Fini()
}

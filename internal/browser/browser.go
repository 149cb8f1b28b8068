// Package browser provides a terminal inspector over an embedding table,
// for checking what a build would ship before shipping it.
package browser

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/assetpack/embedded"
)

// previewBytes is how much of the selected payload the hex pane shows.
const previewBytes = 256

// Browser displays the paths of an embedding table with a hex preview of
// the selected payload.
type Browser struct {
	screen   tcell.Screen
	table    *embedded.Table
	selected int
	scroll   int
	running  bool
}

// New creates a browser over table and initializes the terminal screen.
func New(table *embedded.Table) (*Browser, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Browser{screen: s, table: table, running: true}, nil
}

// Run executes the event loop until the user quits.
func (b *Browser) Run() error {
	defer b.screen.Fini()

	for b.running {
		b.draw()
		b.handleEvent(b.screen.PollEvent())
	}
	return nil
}

// handleEvent processes a single terminal event.
func (b *Browser) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			b.running = false
		case tcell.KeyUp:
			b.move(-1)
		case tcell.KeyDown:
			b.move(1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				b.running = false
			case 'k':
				b.move(-1)
			case 'j':
				b.move(1)
			}
		}
	case *tcell.EventResize:
		b.screen.Sync()
	}
}

// move shifts the selection, clamping to the table bounds and keeping the
// selection visible.
func (b *Browser) move(delta int) {
	b.selected += delta
	if b.selected < 0 {
		b.selected = 0
	}
	if b.selected >= b.table.Len() {
		b.selected = b.table.Len() - 1
	}

	_, height := b.screen.Size()
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	if b.selected < b.scroll {
		b.scroll = b.selected
	}
	if b.selected >= b.scroll+visible {
		b.scroll = b.selected - visible + 1
	}
}

// draw renders the path list on the left and the preview on the right.
func (b *Browser) draw() {
	b.screen.Clear()
	width, height := b.screen.Size()
	split := width / 2

	header := fmt.Sprintf(" %d embedded assets (q to quit)", b.table.Len())
	b.drawText(0, 0, header, tcell.StyleDefault.Bold(true))

	paths := b.table.Paths()
	visible := height - 2
	for i := 0; i < visible && b.scroll+i < len(paths); i++ {
		p := paths[b.scroll+i]
		data, _ := b.table.Lookup(p)
		line := fmt.Sprintf("%s (%d bytes)", p, len(data))
		style := tcell.StyleDefault
		if b.scroll+i == b.selected {
			style = style.Foreground(tcell.ColorYellow).Bold(true)
		}
		b.drawClipped(1, i+2, split-2, line, style)
	}

	if b.selected < len(paths) {
		b.drawPreview(split, 2, width-split-1, height-2, paths[b.selected])
	}
	b.screen.Show()
}

// drawPreview renders a hex dump of the head of the selected payload.
func (b *Browser) drawPreview(x, y, width, height int, p string) {
	data, ok := b.table.Lookup(p)
	if !ok {
		return
	}
	preview := data
	if len(preview) > previewBytes {
		preview = preview[:previewBytes]
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	perLine := width / 3
	if perLine < 1 {
		perLine = 1
	}
	for row := 0; row < height; row++ {
		start := row * perLine
		if start >= len(preview) {
			break
		}
		end := start + perLine
		if end > len(preview) {
			end = len(preview)
		}
		line := ""
		for _, c := range preview[start:end] {
			line += fmt.Sprintf("%02x ", c)
		}
		b.drawClipped(x, y+row, width, line, style)
	}
}

// drawText writes a string starting at (x, y).
func (b *Browser) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		b.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// drawClipped writes a string truncated to maxWidth cells.
func (b *Browser) drawClipped(x, y, maxWidth int, text string, style tcell.Style) {
	col := 0
	for _, ch := range text {
		if col >= maxWidth {
			break
		}
		b.screen.SetContent(x+col, y, ch, nil, style)
		col++
	}
}

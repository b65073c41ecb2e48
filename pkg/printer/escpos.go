package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control bytes.
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Alignment arguments for SetAlign.
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Size arguments for SetFontSize. FontDouble doubles both dimensions.
const (
	FontNormal = 0x00
	FontDouble = 0x11
	FontWide   = 0x10 // double width only
	FontTall   = 0x01 // double height only
)

// Document accumulates an ESC/POS byte stream. Layout helpers pad to the
// character width of the paper, 32 columns on 58mm and 48 on 80mm rolls.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document for the given character width and sends
// the printer reset sequence.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Init sends ESC @, returning the printer to its power-on state.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// LineFeed advances the paper one line.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines advances the paper n lines.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign selects AlignLeft, AlignCenter or AlignRight for following text.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold toggles emphasized printing.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize selects one of the Font* character sizes.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text prints one line.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF prints one Sprintf-formatted line.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints the given character across the full width.
func (d *Document) Separator(char byte) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

// clip truncates s to at most w characters.
func clip(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	return s
}

// padBetween joins left and right with at least one space, pushing right
// to the full document width.
func (d *Document) padBetween(left, right string) *Document {
	gap := d.width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", gap))
	d.buf.WriteString(right)
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a label on the left and its value flushed right, as in
// "Subtotal                 1,500.00".
func (d *Document) KeyValue(key, value string) *Document {
	return d.padBetween(key, value)
}

// ItemLine prints a receipt item as "<qty>x <name>" with the line total
// flushed right.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	return d.padBetween(fmt.Sprintf("%dx %s", qty, name), total)
}

// Row prints fixed-width columns. Cells are clipped to their width and
// left-aligned except the last, which is right-aligned. Cells past
// len(widths) are dropped.
func (d *Document) Row(widths []int, cells ...string) *Document {
	for i, w := range widths {
		if i >= len(cells) {
			break
		}
		cell := clip(cells[i], w)
		pad := strings.Repeat(" ", w-len(cell))
		if i == len(widths)-1 {
			d.buf.WriteString(pad)
			d.buf.WriteString(cell)
		} else {
			d.buf.WriteString(cell)
			d.buf.WriteString(pad)
		}
	}
	d.buf.WriteByte(LF)
	return d
}

// Cut fires the full paper cut.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// PartialCut fires the partial cut, leaving a paper bridge.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the stream to send to the printer.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset drops everything buffered and starts over.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}

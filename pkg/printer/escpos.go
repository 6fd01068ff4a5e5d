package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	FontNormal = 0x00
	FontDouble = 0x11
	FontWide   = 0x10
	FontTall   = 0x01
)

// Paper widths in characters at the normal font
const (
	Width58mm = 32
	Width80mm = 48
)

// Document accumulates an ESC/POS byte stream. Widths are counted in runes so that
// the rupee sign and Tamil text do not break column alignment.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document for a paper width in characters
func NewDocument(width int) *Document {
	if width <= 0 {
		width = Width58mm
	}
	d := &Document{width: width}
	d.Init()
	return d
}

// Width is the line width in characters
func (d *Document) Width() int {
	return d.width
}

// Init resets the printer (ESC @)
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes s on its own line, wrapping at the paper width
func (d *Document) Text(s string) *Document {
	for _, line := range wrap(s, d.width) {
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width rule
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints key on the left and value flush right
func (d *Document) KeyValue(key, value string) *Document {
	d.buf.WriteString(spread(key, value, d.width))
	d.buf.WriteByte(LF)
	return d
}

// ItemLine prints the item name, wrapped if needed, then a row with quantity x rate on
// the left and the amount on the right
func (d *Document) ItemLine(name string, qty int, rate, amount string) *Document {
	d.Text(name)
	d.buf.WriteString(spread(fmt.Sprintf("  %d x %s", qty, rate), amount, d.width))
	d.buf.WriteByte(LF)
	return d
}

// QRCode prints data as a native QR symbol (GS ( k, model 2). Printers without QR
// support ignore the command.
func (d *Document) QRCode(data string, moduleSize byte) *Document {
	if moduleSize < 1 || moduleSize > 16 {
		moduleSize = 6
	}
	// model 2
	d.buf.Write([]byte{GS, '(', 'k', 4, 0, 0x31, 0x41, 0x32, 0x00})
	// module size
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 0x31, 0x43, moduleSize})
	// error correction M
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 0x31, 0x45, 0x31})

	n := len(data) + 3
	d.buf.Write([]byte{GS, '(', 'k', byte(n % 256), byte(n / 256), 0x31, 0x50, 0x30})
	d.buf.WriteString(data)
	// print
	d.buf.Write([]byte{GS, '(', 'k', 3, 0, 0x31, 0x51, 0x30})
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated stream
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func spread(left, right string, width int) string {
	spaces := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}

// wrap breaks s into lines of at most width runes, preferring word boundaries
func wrap(s string, width int) []string {
	if utf8.RuneCountInString(s) <= width {
		return []string{s}
	}
	var lines []string
	var current []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				lines = append(lines, string(current))
				current = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			lines = append(lines, string(current))
			current = w
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}

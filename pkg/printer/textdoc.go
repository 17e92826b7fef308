package printer

import (
	"fmt"
	"strings"
)

// Common paper widths in characters: 32 for 58mm paper, 42 for 80mm.
const (
	Width58mm = 32
	Width80mm = 42
)

// Document builds a fixed-width plain text ticket, one rune per column.
// The print sink receives the rendered text as-is; hardware concerns
// (code pages, cuts, cash drawer) live on the other side of the wire.
type Document struct {
	sb    strings.Builder
	width int
}

// NewDocument creates a new text document with the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = Width58mm
	}
	return &Document{width: charWidth}
}

// Width returns the configured character width.
func (d *Document) Width() int {
	return d.width
}

// Text writes a line of text followed by a newline. Lines longer than
// the paper width are wrapped, not truncated.
func (d *Document) Text(s string) *Document {
	for _, line := range wrap(s, d.width) {
		d.sb.WriteString(line)
		d.sb.WriteByte('\n')
	}
	return d
}

// TextF writes a formatted line of text followed by a newline.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Center writes a line centered within the paper width.
func (d *Document) Center(s string) *Document {
	for _, line := range wrap(s, d.width) {
		pad := (d.width - len([]rune(line))) / 2
		if pad > 0 {
			d.sb.WriteString(strings.Repeat(" ", pad))
		}
		d.sb.WriteString(line)
		d.sb.WriteByte('\n')
	}
	return d
}

// Separator prints a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.sb.WriteString(strings.Repeat(string(char), d.width))
	d.sb.WriteByte('\n')
	return d
}

// BlankLine writes an empty line.
func (d *Document) BlankLine() *Document {
	d.sb.WriteByte('\n')
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the
// same line. Example: "Subtotal                 $100.00"
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - len([]rune(key)) - len([]rune(value))
	if spaces < 1 {
		spaces = 1
	}
	d.sb.WriteString(key)
	d.sb.WriteString(strings.Repeat(" ", spaces))
	d.sb.WriteString(value)
	d.sb.WriteByte('\n')
	return d
}

// ItemLine prints a receipt item line: qty x name, then a right-aligned
// amount. Names that do not fit next to the amount continue on wrapped
// lines indented under the name column.
// Example: " 2x Tacos al pastor        120.00"
func (d *Document) ItemLine(qty int64, name, amount string) *Document {
	prefix := fmt.Sprintf("%2dx ", qty)
	avail := d.width - len(prefix) - len([]rune(amount)) - 1
	if avail < 4 {
		avail = 4
	}

	lines := wrap(name, avail)
	first := lines[0]
	spaces := d.width - len(prefix) - len([]rune(first)) - len([]rune(amount))
	if spaces < 1 {
		spaces = 1
	}
	d.sb.WriteString(prefix)
	d.sb.WriteString(first)
	d.sb.WriteString(strings.Repeat(" ", spaces))
	d.sb.WriteString(amount)
	d.sb.WriteByte('\n')

	indent := strings.Repeat(" ", len(prefix))
	for _, cont := range lines[1:] {
		d.sb.WriteString(indent)
		d.sb.WriteString(cont)
		d.sb.WriteByte('\n')
	}
	return d
}

// QtyLine prints a kitchen item line without amounts: qty x name.
func (d *Document) QtyLine(qty int64, name string) *Document {
	prefix := fmt.Sprintf("%2dx ", qty)
	lines := wrap(name, d.width-len(prefix))
	d.sb.WriteString(prefix)
	d.sb.WriteString(lines[0])
	d.sb.WriteByte('\n')

	indent := strings.Repeat(" ", len(prefix))
	for _, cont := range lines[1:] {
		d.sb.WriteString(indent)
		d.sb.WriteString(cont)
		d.sb.WriteByte('\n')
	}
	return d
}

// String returns the accumulated text.
func (d *Document) String() string {
	return d.sb.String()
}

// Reset clears the buffer.
func (d *Document) Reset() *Document {
	d.sb.Reset()
	return d
}

// wrap splits s into lines of at most width runes, breaking on spaces
// where possible. Always returns at least one line.
func wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	runes := []rune(s)
	if len(runes) <= width {
		return []string{s}
	}

	var lines []string
	for len(runes) > width {
		cut := width
		for i := width; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		lines = append(lines, strings.TrimRight(string(runes[:cut]), " "))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		lines = append(lines, string(runes))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_TextWrapsLongLines(t *testing.T) {
	d := NewDocument(Width58mm)
	d.Text("Tacos al pastor con queso extra y cebolla caramelizada")

	lines := strings.Split(strings.TrimRight(d.String(), "\n"), "\n")
	assert.Greater(t, len(lines), 1, "long line should wrap")
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), Width58mm, "line %q exceeds paper width", line)
	}
}

func TestDocument_Center(t *testing.T) {
	d := NewDocument(Width58mm)
	d.Center("FENIX")

	line := strings.TrimRight(d.String(), "\n")
	// (32 - 5) / 2 = 13 spaces of left padding
	assert.Equal(t, strings.Repeat(" ", 13)+"FENIX", line)
}

func TestDocument_Separator(t *testing.T) {
	d := NewDocument(Width80mm)
	d.Separator('-')
	assert.Equal(t, strings.Repeat("-", Width80mm)+"\n", d.String())
}

func TestDocument_KeyValueRightAligns(t *testing.T) {
	d := NewDocument(Width58mm)
	d.KeyValue("Subtotal", "$100.00")

	line := strings.TrimRight(d.String(), "\n")
	assert.Equal(t, Width58mm, len([]rune(line)))
	assert.True(t, strings.HasPrefix(line, "Subtotal"))
	assert.True(t, strings.HasSuffix(line, "$100.00"))
}

func TestDocument_ItemLine(t *testing.T) {
	d := NewDocument(Width58mm)
	d.ItemLine(2, "Tacos al pastor", "190.00")

	line := strings.TrimRight(d.String(), "\n")
	assert.Equal(t, " 2x Tacos al pastor       190.00", line)
}

func TestDocument_ItemLineWrapsNameWithIndent(t *testing.T) {
	d := NewDocument(Width58mm)
	d.ItemLine(1, "Hamburguesa doble con tocino y papas a la francesa", "155.00")

	lines := strings.Split(strings.TrimRight(d.String(), "\n"), "\n")
	assert.Greater(t, len(lines), 1, "long name should continue on wrapped lines")
	assert.True(t, strings.HasPrefix(lines[0], " 1x "))
	assert.True(t, strings.HasSuffix(lines[0], "155.00"))
	for _, cont := range lines[1:] {
		assert.True(t, strings.HasPrefix(cont, "    "), "continuation %q should be indented", cont)
	}
}

func TestDocument_QtyLine(t *testing.T) {
	d := NewDocument(Width80mm)
	d.QtyLine(12, "Agua mineral")
	assert.Equal(t, "12x Agua mineral\n", d.String())
}

func TestDocument_Reset(t *testing.T) {
	d := NewDocument(Width58mm)
	d.Text("something")
	d.Reset()
	assert.Equal(t, "", d.String())
}

func TestNewDocument_DefaultWidth(t *testing.T) {
	assert.Equal(t, Width58mm, NewDocument(0).Width())
	assert.Equal(t, Width80mm, NewDocument(Width80mm).Width())
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"short"}, wrap("short", 10))
	assert.Equal(t, []string{""}, wrap("", 10))

	lines := wrap("uno dos tres cuatro", 8)
	for _, l := range lines {
		assert.LessOrEqual(t, len([]rune(l)), 8)
	}
	assert.Equal(t, "uno dos tres cuatro", strings.Join(lines, " "), "wrapping must not lose words")

	// A single word longer than the width gets hard-cut.
	hard := wrap("abcdefghij", 4)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, hard)
}

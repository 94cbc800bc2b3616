package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/encoding/charmap"
)

func TestToChar(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		b    byte
		char rune
	}){
		{0x00, ' '},
		{0x0a, ' '},
		{0x1f, ' '},
		{0x20, ' '},
		{0x21, '!'},
		{0x41, 'A'},
		{0x7e, '~'},
		{0x7f, ' '},
		{0x80, ' '},
		{0x9f, ' '},
		{0xa3, '£'},
		{0xe9, 'é'},
		{0xff, 'ÿ'},
	}

	for _, entry := range table {
		assert.Equal(entry.char, ToChar(entry.b), "0x%02x", entry.b)
	}
}

func TestFromChar(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(byte(0x20), FromChar(' '))
	assert.Equal(byte(0x41), FromChar('A'))
	assert.Equal(byte(0xe9), FromChar('é'))

	// No table entry: falls back to zero.
	assert.Equal(byte(0), FromChar('\n'))
	assert.Equal(byte(0), FromChar('€'))
	assert.Equal(byte(0), FromChar('世'))
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for n := range 256 {
		b := byte(n)
		char := ToChar(b)
		if char == Blank && b != 0x20 {
			assert.Equal(byte(0x20), FromChar(char), "0x%02x", b)
			continue
		}
		assert.Equal(b, FromChar(char), "0x%02x", b)
	}
}

func TestRoundTrip_Glyphs(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for n := range 256 {
		if FromChar(ToChar(byte(n))) == byte(n) {
			count++
		}
	}

	// 256 minus 32 C0, DEL and 32 C1 codes.
	assert.Equal(191, count)
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	c, err := Lookup("windows-1252")
	assert.NoError(err)
	assert.Equal("Windows 1252", c.Name())
	assert.Equal('€', c.ToChar(0x80))
	assert.Equal(byte(0x80), c.FromChar('€'))

	c, err = Lookup("ISO_8859_15")
	assert.NoError(err)
	assert.Equal('€', c.ToChar(0xa4))

	c, err = Lookup("iso 8859-1")
	assert.NoError(err)
	assert.Equal(Default.table, c.table)
}

func TestLookup_Unknown(t *testing.T) {
	assert := assert.New(t)

	c, err := Lookup("utf-8")
	assert.Nil(c)
	assert.ErrorIs(err, ErrCharsetUnknown)

	var ec *ErrCharset
	assert.ErrorAs(err, &ec)
	assert.Equal("utf-8", ec.Name)
}

func TestNew(t *testing.T) {
	assert := assert.New(t)

	c := New(charmap.CodePage437)
	assert.Equal("IBM Code Page 437", c.Name())
	// Line drawing survives, the low control block does not.
	assert.Equal('═', c.ToChar(0xcd))
	assert.Equal(Blank, c.ToChar(0x07))
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal('é', Default.Decode(0xe9))
	assert.Equal('\n', Default.Decode(0x0a))
	assert.Equal(Blank, Default.ToChar(0x0a))

	// Controls have no table entry, glyphs survive.
	assert.Equal(byte(0), Default.FromChar(Default.Decode(0x85)))
	assert.Equal(byte(0xe9), Default.FromChar(Default.Decode(0xe9)))

	c, err := Lookup("windows-1252")
	assert.NoError(err)
	assert.Equal('€', c.Decode(0x80))
}

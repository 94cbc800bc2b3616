// Package codec maps tape cells to the characters shown on a terminal.
//
// A Codec is a fixed 256 entry table built from a single byte character
// map. Control codes (C0, DEL and C1) have no glyph and are shown as a
// space. Tables are read-only once built and safe for concurrent use.
package codec

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ezrec/bfi/translate"
)

var f = translate.From

var (
	ErrCharsetUnknown = errors.New(f("charset unknown"))
)

// Blank is the character shown for bytes without a glyph.
const Blank = ' '

// Codec is a bidirectional byte <-> character table.
type Codec struct {
	name    string
	raw     [256]rune
	table   [256]rune
	reverse map[rune]byte
}

// Default is the ISO 8859-1 table.
var Default = New(charmap.ISO8859_1)

// New builds a codec from a single byte character map.
func New(cm *charmap.Charmap) (c *Codec) {
	c = &Codec{
		name:    cm.String(),
		reverse: make(map[rune]byte, 256),
	}

	for n := range 256 {
		b := byte(n)
		r := cm.DecodeByte(b)
		c.raw[b] = r
		if unicode.IsControl(r) || r == utf8.RuneError {
			c.table[b] = Blank
			continue
		}
		c.table[b] = r
		if _, dup := c.reverse[r]; !dup {
			c.reverse[r] = b
		}
	}

	return
}

func normalize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return unicode.ToLower(r)
	}, name)
}

// Lookup finds a single byte charmap by name, ie "iso-8859-15" or "windows-1252".
func Lookup(name string) (c *Codec, err error) {
	want := normalize(name)
	for _, enc := range charmap.All {
		cm, ok := enc.(*charmap.Charmap)
		if !ok {
			continue
		}
		if normalize(cm.String()) == want {
			c = New(cm)
			return
		}
	}

	err = &ErrCharset{Name: name}
	return
}

// Name of the underlying character map.
func (c *Codec) Name() string {
	return c.name
}

// ToChar returns the character for a byte. Every byte has one.
func (c *Codec) ToChar(b byte) rune {
	return c.table[b]
}

// Decode returns the charset's own character for b, controls included.
// Input bytes that are not UTF-8 are read through it.
func (c *Codec) Decode(b byte) rune {
	return c.raw[b]
}

// FromChar returns the byte whose character is r, or 0 if there is none.
// The blank maps to the byte that decodes to a space (0x20), never to a
// blanked control code.
func (c *Codec) FromChar(r rune) byte {
	return c.reverse[r]
}

// ToChar converts with the Default codec.
func ToChar(b byte) rune {
	return Default.ToChar(b)
}

// FromChar converts with the Default codec.
func FromChar(r rune) byte {
	return Default.FromChar(r)
}

// ErrCharset names a charset that Lookup could not find.
type ErrCharset struct {
	Name string
}

func (err *ErrCharset) Error() string {
	return f("charset '%v' unknown", err.Name)
}

func (err *ErrCharset) Is(target error) bool {
	return target == ErrCharsetUnknown
}

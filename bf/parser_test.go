package bf

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

// noLoopEnd reports whether the tree is free of OP_LOOP_END.
func noLoopEnd(prog Program) bool {
	for _, ins := range prog {
		if ins.Op == OP_LOOP_END {
			return false
		}
		if !noLoopEnd(ins.Body) {
			return false
		}
	}
	return true
}

func TestParse_CopyLoop(t *testing.T) {
	assert := assert.New(t)

	p := &Parser{}
	prog, err := p.Parse(strings.NewReader("+[>+<-]"))
	assert.NoError(err)

	expect := Program{
		{Op: OP_INCREMENT},
		{Op: OP_LOOP, Body: Program{
			{Op: OP_FORWARD},
			{Op: OP_INCREMENT},
			{Op: OP_BACKWARD},
			{Op: OP_DECREMENT},
		}},
	}
	assert.Equal(expect, prog)
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		expect string
	}){
		{"empty", "", ""},
		{"leaves", "+-><.,", "+-><.,"},
		{"comments", "add + then sub - and print .\n", "+-."},
		{"unicode", "→+ é- ☃.", "+-."},
		{"nested", "[[+]>[-]]", "[[+]>[-]]"},
		{"empty_loop", "[]", "[]"},
		{"stray_close", "]+]", "+"},
		{"stray_close_inner", "[+]]-", "[+]-"},
		{"unclosed", "+[>+", "+[>+]"},
		{"unclosed_nested", "[[+", "[[+]]"},
		{"unclosed_after", "[-]>[<", "[-]>[<]"},
	}

	for _, entry := range table {
		prog := Parse(entry.source)
		assert.Equal(entry.expect, prog.String(), entry.name)
		assert.True(noLoopEnd(prog), entry.name)
	}
}

func TestParse_Unclosed(t *testing.T) {
	assert := assert.New(t)

	prog := Parse("[[+")
	assert.Len(prog, 1)
	assert.Equal(OP_LOOP, prog[0].Op)
	assert.Len(prog[0].Body, 1)
	assert.Equal(OP_LOOP, prog[0].Body[0].Op)
	assert.Equal(Program{{Op: OP_INCREMENT}}, prog[0].Body[0].Body)
}

func TestParse_Strict(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		offset int
		err    error
	}){
		{"stray_close", "+]", 1, ErrUnmatchedClose},
		{"late_close", "[+]x]", 4, ErrUnmatchedClose},
		{"unclosed", "ab[", 2, ErrUnclosedLoop},
		{"unclosed_outer", "[[+]", 0, ErrUnclosedLoop},
		{"unclosed_inner", "[+][[-]>[", 8, ErrUnclosedLoop},
	}

	p := &Parser{Strict: true}
	for _, entry := range table {
		prog, err := p.Parse(strings.NewReader(entry.source))
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var es *ErrSyntax
		if assert.ErrorAs(err, &es, entry.name) {
			assert.Equal(entry.offset, es.Offset, entry.name)
		}
	}

	prog, err := p.Parse(strings.NewReader("+[>+<-] balanced"))
	assert.NoError(err)
	assert.Equal("+[>+<-]", prog.String())
}

func TestParse_ReadError(t *testing.T) {
	assert := assert.New(t)

	bad := errors.New("disk on fire")
	input := io.MultiReader(strings.NewReader("+[-"), iotest.ErrReader(bad))

	p := &Parser{}
	prog, err := p.Parse(input)
	assert.ErrorIs(err, bad)
	assert.Nil(prog)
}

func TestParse_Verbose(t *testing.T) {
	assert := assert.New(t)

	p := &Parser{Verbose: true}
	prog, err := p.Parse(strings.NewReader("+[.]"))
	assert.NoError(err)
	assert.Equal("+[.]", prog.String())
}

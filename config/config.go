// Package config loads interpreter settings from a Starlark file.
//
// A config file is plain Starlark; only these globals are read:
//
//	charset = "iso-8859-1"  # single byte charmap for I/O
//	prompt  = "bf> "        # REPL prompt
//	verbose = False         # log every instruction
//	strict  = False         # reject unbalanced brackets
//
// The REPL always parses strictly, so strict only affects files and -e.
//
// The predeclared getenv(name, default="") reads the environment.
package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/bfi/translate"
)

var f = translate.From

var (
	ErrConfigType = errors.New(f("config type"))
)

// Filename is the config file looked for in the home directory.
const Filename = ".bfi.star"

// Config holds interpreter settings.
type Config struct {
	Charset string
	Prompt  string
	Verbose bool
	Strict  bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Charset: "iso-8859-1",
		Prompt:  "bf> ",
	}
}

func getenv(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var fallback string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "default?", &fallback); err != nil {
		return nil, err
	}
	value, ok := os.LookupEnv(name)
	if !ok {
		value = fallback
	}
	return starlark.String(value), nil
}

// Load evaluates a config file over the defaults. If src is nil, the file
// is read from filename; otherwise src is the file content, as for
// starlark.ExecFileOptions.
func Load(filename string, src any) (cfg Config, err error) {
	cfg = Default()

	thread := &starlark.Thread{
		Name: "config",
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", filename, msg)
		},
	}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"getenv": starlark.NewBuiltin("getenv", getenv),
	}

	dict, err := starlark.ExecFileOptions(&opts, thread, filename, src, pred)
	if err != nil {
		return
	}

	err = cfg.apply(dict)
	return
}

// LoadDefault loads Filename from the home directory. A missing file, or
// no home directory, gives the defaults.
func LoadDefault() (cfg Config, err error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}

	path := filepath.Join(home, Filename)
	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return
	}

	return Load(path, nil)
}

func (cfg *Config) apply(dict starlark.StringDict) (err error) {
	strs := map[string]*string{
		"charset": &cfg.Charset,
		"prompt":  &cfg.Prompt,
	}
	for name, ptr := range strs {
		value, ok := dict[name]
		if !ok {
			continue
		}
		str, ok := starlark.AsString(value)
		if !ok {
			return &ErrType{Name: name, Want: "string", Got: value.Type()}
		}
		*ptr = str
	}

	bools := map[string]*bool{
		"verbose": &cfg.Verbose,
		"strict":  &cfg.Strict,
	}
	for name, ptr := range bools {
		value, ok := dict[name]
		if !ok {
			continue
		}
		b, ok := value.(starlark.Bool)
		if !ok {
			return &ErrType{Name: name, Want: "bool", Got: value.Type()}
		}
		*ptr = bool(b)
	}

	return
}

// ErrType reports a config global of the wrong type.
type ErrType struct {
	Name string
	Want string
	Got  string
}

func (err *ErrType) Error() string {
	return f("%v: want %v, got %v", err.Name, err.Want, err.Got)
}

func (err *ErrType) Is(target error) bool {
	return target == ErrConfigType
}

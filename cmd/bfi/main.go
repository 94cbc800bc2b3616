// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ezrec/bfi/bf"
	"github.com/ezrec/bfi/codec"
	"github.com/ezrec/bfi/config"
	"github.com/ezrec/bfi/repl"
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %v [flags] [file.bf ...]\n", os.Args[0])
	fmt.Fprintf(out, "Files run in order on one tape. With no files and no -e, starts a REPL.\n")
	flag.PrintDefaults()
}

func main() {
	var configFile string
	var charset string
	var eval string
	var input string
	var output string
	var strict bool
	var verbose bool

	flag.StringVar(&configFile, "config", "", "Starlark config file (default ~/"+config.Filename+")")
	flag.StringVar(&charset, "charset", "", "Single byte charset for I/O")
	flag.StringVar(&eval, "e", "", "Program text to run")
	flag.StringVar(&input, "i", "-", "Program input")
	flag.StringVar(&output, "o", "-", "Program output")
	flag.BoolVar(&strict, "strict", false, "Reject unbalanced brackets")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Usage = usage
	flag.Parse()

	var cfg config.Config
	var err error
	if len(configFile) != 0 {
		cfg, err = config.Load(configFile, nil)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Flags given on the command line override the config file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "charset":
			cfg.Charset = charset
		case "strict":
			cfg.Strict = strict
		case "v":
			cfg.Verbose = verbose
		}
	})

	table, err := codec.Lookup(cfg.Charset)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if len(eval) != 0 && flag.NArg() != 0 {
		log.Fatalf("%v: -e and files are exclusive: %v", os.Args[0], flag.Args())
	}

	var inf io.Reader = os.Stdin
	if input != "-" {
		file, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer file.Close()
		inf = file
	}

	var ouf io.Writer = os.Stdout
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer file.Close()
		ouf = file
	}

	if len(eval) == 0 && flag.NArg() == 0 {
		sess := repl.NewSession(inf, ouf)
		sess.Prompt = cfg.Prompt
		sess.Interactive = input == "-" && repl.IsTerminal(os.Stdin)
		sess.State.Codec = table
		sess.State.Verbose = cfg.Verbose

		err = sess.Run()
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	state := bf.NewState()
	state.Input = bufio.NewReader(inf)
	state.Output = ouf
	state.Codec = table
	state.Verbose = cfg.Verbose

	parser := &bf.Parser{Strict: cfg.Strict, Verbose: cfg.Verbose}

	if len(eval) != 0 {
		prog, err := parser.Parse(strings.NewReader(eval))
		if err != nil {
			log.Fatalf("-e: %v", err)
		}
		state.Execute(prog)
		return
	}

	for _, name := range flag.Args() {
		prog, err := parseFile(parser, name)
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}
		state.Execute(prog)
	}
}

func parseFile(parser *bf.Parser, name string) (prog bf.Program, err error) {
	file, err := os.Open(name)
	if err != nil {
		return
	}
	defer file.Close()

	return parser.Parse(file)
}

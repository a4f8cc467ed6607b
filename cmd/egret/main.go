// Command egret is a thin CLI collaborator over the egret package:
// it forwards one regex on the command line to Generate or Check and
// prints the result, one line per string or alert.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/purduedualitylab/egret"
)

func main() {
	var (
		checkMode     = flag.Bool("check", false, "run structural checks instead of generating test strings")
		webMode       = flag.Bool("web", false, "render alert highlighting as HTML instead of ANSI escapes")
		statMode      = flag.Bool("stats", false, "print a counter table after the result")
		debugMode     = flag.Bool("debug", false, "print the scanner/parse-tree/NFA structural dump before the result")
		baseSubstring = flag.String("base", "xxx", "literal word substituted for repeated word-class character sets")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: egret [flags] <regex>")
		os.Exit(2)
	}
	regex := flag.Arg(0)

	opts := egret.DefaultOptions()
	opts.WebMode = *webMode
	opts.StatMode = *statMode
	opts.DebugMode = *debugMode
	opts.BaseSubstring = *baseSubstring

	var (
		res egret.Result
		err error
	)
	if *checkMode {
		res, err = egret.Check(regex, opts)
	} else {
		res, err = egret.Generate(regex, opts)
	}
	if err != nil {
		log.Fatal(err)
	}

	if *debugMode {
		fmt.Print(res.Debug)
	}

	for _, a := range res.Alerts {
		fmt.Println(a)
	}
	if !*checkMode {
		fmt.Println("BEGIN")
		for _, s := range res.Strings {
			fmt.Println(s)
		}
	}
	if *statMode {
		fmt.Println(res.Stats)
	}
}

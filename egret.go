// Package egret implements EGRET's regex analysis engine: given a
// regular expression, it either reports structural alerts about
// suspect constructs (Check) or synthesizes a curated catalog of test
// strings that probe the pattern's edge cases (Generate).
//
// This is the public facade mirroring egret.cpp's run_engine: validate
// arguments, scan, parse, build the NFA, find and process its basis
// paths, then branch into the checker or the test generator.
package egret

import (
	"strings"

	"github.com/purduedualitylab/egret/internal/alert"
	"github.com/purduedualitylab/egret/internal/ast"
	"github.com/purduedualitylab/egret/internal/checker"
	"github.com/purduedualitylab/egret/internal/nfa"
	"github.com/purduedualitylab/egret/internal/path"
	"github.com/purduedualitylab/egret/internal/scanner"
	"github.com/purduedualitylab/egret/internal/span"
	"github.com/purduedualitylab/egret/internal/stats"
	"github.com/purduedualitylab/egret/internal/testgen"
	"github.com/purduedualitylab/egret/internal/token"
)

// Result is the outcome of one Generate or Check call.
type Result struct {
	// Alerts holds the rendered structural diagnostics. Check returns
	// only these (with warnings suppressed). Generate does not run the
	// checker, so its Alerts is empty; alerts are never merged into
	// Strings.
	Alerts []string

	// Strings holds the generated test-string catalog. Empty for
	// Check.
	Strings []string

	// Stats holds the rendered counter table when Options.StatMode is
	// set on Generate, empty otherwise (Check records no counters).
	Stats string

	// Debug holds the scanner/parse-tree/NFA structural dump when
	// Options.DebugMode is set, empty otherwise.
	Debug string
}

// Generate synthesizes a curated catalog of test strings for regex.
// The structural checker is not run, so Result.Alerts stays empty.
func Generate(regex string, opts Options) (Result, error) {
	opts.CheckMode = false
	return run(regex, opts)
}

// Check runs only the structural checker against regex, returning its
// alerts (or a single "No violations detected." line when there are
// none).
func Check(regex string, opts Options) (Result, error) {
	opts.CheckMode = true
	return run(regex, opts)
}

func run(regex string, opts Options) (Result, error) {
	if err := validateBaseSubstring(opts.BaseSubstring); err != nil {
		return Result{}, err
	}

	st := stats.New()

	tree, err := ast.Parse(regex)
	if err != nil {
		return Result{}, wrapParseErr(err)
	}

	n, err := nfa.Build(tree)
	if err != nil {
		return Result{}, wrapParseErr(err)
	}

	var debugDump string
	if opts.DebugMode {
		debugDump = buildDebugDump(regex, tree, n)
	}

	paths := path.FindBasisPaths(n)
	for _, p := range paths {
		p.Process(opts.BaseSubstring)
	}

	sink := alert.NewSink(regex, opts.CheckMode, opts.WebMode)

	var res Result

	if opts.CheckMode {
		checker.Run(paths, opts.BaseSubstring, sink)
		res.Alerts = sink.Alerts()
		if len(res.Alerts) == 0 {
			res.Alerts = []string{"No violations detected."}
		}
	} else {
		strs, total := testgen.Generate(paths, tree.PunctMarks)
		res.Alerts = sink.Alerts()
		res.Strings = strs

		if opts.StatMode {
			st.Add("PATHS", "Paths", len(paths))
			st.Add("PATHS", "Strings", total)
		}
	}

	if opts.StatMode {
		res.Stats = st.String()
	}

	res.Debug = debugDump

	return res, nil
}

// buildDebugDump renders the scanner/parse-tree/NFA structural dumps
// egret.cpp's debug_mode prints directly to stdout, as a string the
// caller decides where to send (spec.md's library shape never writes
// to a global stream as a side effect).
func buildDebugDump(regex string, tree *ast.Tree, n *nfa.NFA) string {
	var b strings.Builder
	b.WriteString("=== Tokens ===\n")
	if sc, err := scanner.New(regex); err == nil {
		for sc.CurrentKind() != token.Err {
			if err := sc.Advance(); err != nil {
				break
			}
		}
		b.WriteString(sc.Dump())
	}
	b.WriteString("=== Parse tree ===\n")
	b.WriteString(tree.Dump())
	b.WriteString("=== NFA ===\n")
	b.WriteString(n.Dump())
	return b.String()
}

// validateBaseSubstring enforces the two constraints run_engine checks
// before doing anything else: at least two characters, all of them
// alphabetic.
func validateBaseSubstring(base string) error {
	if len(base) < 2 {
		return ErrBadArguments
	}
	for i := 0; i < len(base); i++ {
		c := base[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return ErrBadArguments
		}
	}
	return nil
}

func wrapParseErr(err error) error {
	if se, ok := err.(*ast.SyntaxError); ok {
		return &ParseError{Loc: se.Loc, Message: se.Message}
	}
	return parseErrorf(span.None, "%s", err.Error())
}

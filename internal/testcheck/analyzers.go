//go:build !remote

// Package testcheck runs the static analyzers every package in this
// module is held to.
package testcheck

import (
	"testing"

	errname "github.com/Antonboom/errname/pkg/analyzer"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/atomicalign"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/deepequalerrors"
	"golang.org/x/tools/go/analysis/passes/gofix"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/reflectvaluecompare"
	"golang.org/x/tools/go/analysis/passes/sortslice"
	"golang.org/x/tools/go/analysis/passes/unusedwrite"
	"golang.org/x/tools/go/analysis/passes/waitgroup"

	"lesiw.io/checker"
	"lesiw.io/errcheck/errcheck"
	"lesiw.io/linelen"
	"lesiw.io/plscheck/deprecated"
	"lesiw.io/plscheck/embeddirective"
	"lesiw.io/plscheck/fillreturns"
	"lesiw.io/plscheck/infertypeargs"
	"lesiw.io/plscheck/maprange"
	"lesiw.io/plscheck/modernize"
	"lesiw.io/plscheck/nonewvars"
	"lesiw.io/plscheck/noresultvalues"
	"lesiw.io/plscheck/recursiveiter"
	"lesiw.io/plscheck/simplifycompositelit"
	"lesiw.io/plscheck/simplifyrange"
	"lesiw.io/plscheck/simplifyslice"
	"lesiw.io/plscheck/unusedfunc"
	"lesiw.io/plscheck/unusedparams"
	"lesiw.io/plscheck/unusedvariable"
	"lesiw.io/plscheck/yield"
	"lesiw.io/tidytypes"
)

// Process handling: sessions own a cancel func, a mutex and an errgroup.
var concurrency = []*analysis.Analyzer{
	atomicalign.Analyzer,
	copylock.Analyzer,
	lostcancel.Analyzer,
	waitgroup.Analyzer,
}

// Error values: sentinels and *cmdinput.Error travel through wrapping.
var errorHandling = []*analysis.Analyzer{
	deepequalerrors.Analyzer,
	errcheck.Analyzer,
	errname.New(),
	nilness.Analyzer,
	reflectvaluecompare.Analyzer,
}

// Editor checks, as gopls would report them.
var editor = []*analysis.Analyzer{
	deprecated.Analyzer,
	embeddirective.Analyzer,
	fillreturns.Analyzer,
	infertypeargs.Analyzer,
	maprange.Analyzer,
	modernize.Analyzer,
	nonewvars.Analyzer,
	noresultvalues.Analyzer,
	recursiveiter.Analyzer,
	simplifycompositelit.Analyzer,
	simplifyrange.Analyzer,
	simplifyslice.Analyzer,
	unusedfunc.Analyzer,
	unusedparams.Analyzer,
	unusedvariable.Analyzer,
	yield.Analyzer,
}

var style = []*analysis.Analyzer{
	composite.Analyzer,
	gofix.Analyzer,
	linelen.Analyzer,
	sortslice.Analyzer,
	tidytypes.Analyzer,
	unusedwrite.Analyzer,
}

// Run runs every analyzer over the module.
func Run(t *testing.T) {
	var all []*analysis.Analyzer
	for _, set := range [][]*analysis.Analyzer{
		concurrency, errorHandling, editor, style,
	} {
		all = append(all, set...)
	}
	checker.Run(t, all...)
}

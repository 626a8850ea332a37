// Command stkprims lists the Go functions in a package that implement
// Scheme primitives, as registration-table entries ready to paste into
// an init function. A primitive implementation is any package-level
// function assignable to the package's Fn type.
package main

import (
	"flag"
	"fmt"
	"go/token"
	"go/types"
	"os"
	"regexp"
	"sort"

	"golang.org/x/tools/go/packages"
)

func main() {
	var match, ignore string
	var stklos string
	flag.StringVar(&match, "match", ".", "include only functions matching this regular expression")
	flag.StringVar(&ignore, "ignore", "$^", "exclude functions matching this regular expression")
	flag.StringVar(&stklos, "stklos", "github.com/geisertalk/stklos", "import path for the package defining Fn")
	flag.Parse()
	mre, err := regexp.Compile(match)
	if err != nil {
		fail("error compiling match:", err)
	}
	ire, err := regexp.Compile(ignore)
	if err != nil {
		fail("error compiling ignore:", err)
	}

	fset := token.NewFileSet()
	config := packages.Config{Mode: packages.NeedTypes | packages.NeedSyntax | packages.NeedImports, Fset: fset}
	pkgs, err := packages.Load(&config, append([]string{stklos}, flag.Args()...)...)
	if err != nil {
		fail("error loading packages:", err)
	}
	fn, scan := getFn(pkgs)
	results := []string{}
	for _, pkg := range scan {
		for res := range find(pkg.Types.Scope(), fn, mre, ire) {
			results = append(results, res)
		}
	}
	sort.Strings(results)
	for _, name := range results {
		fmt.Printf("\t%q: %s,\n", primName(name), name)
	}
}

func fail(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

// getFn resolves the Fn type from the first loaded package. When no
// extra packages were named, the defining package is also scanned.
func getFn(pkgs []*packages.Package) (types.Type, []*packages.Package) {
	pkg := pkgs[0].Types
	r := pkg.Scope().Lookup("Fn")
	if r == nil {
		fail(pkg.Name(), "has no definition of Fn")
	}
	t, ok := r.(*types.TypeName)
	if !ok {
		fail(pkg.Name(), "has incorrect definition of Fn:", r)
	}
	fn := t.Type().Underlying()
	if len(pkgs) == 1 {
		return fn, pkgs
	}
	return fn, pkgs[1:]
}

func find(pkg *types.Scope, fn types.Type, mre, ire *regexp.Regexp) chan string {
	ch := make(chan string, 8)
	go func() {
		defer close(ch)
		for _, name := range pkg.Names() {
			if mre.MatchString(name) && !ire.MatchString(name) {
				t := pkg.Lookup(name).Type()
				if types.AssignableTo(t, fn) {
					ch <- name
				}
			}
		}
	}()
	return ch
}

var camel = regexp.MustCompile(`^(prim|geiser|expand)`)

// primName guesses the Scheme-level name for a Go implementation:
// strip the conventional prefix and lowercase the remainder. The output
// is a starting point for the table, not gospel; several primitives
// have punctuation names no Go identifier can carry.
func primName(goName string) string {
	s := camel.ReplaceAllString(goName, "")
	if s == "" {
		return goName
	}
	out := []rune{}
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out = append(out, '-')
			}
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

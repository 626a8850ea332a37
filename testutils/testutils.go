// Package testutils provides utilities for testing Scheme code in Go.
package testutils

import (
	"sync"
	"testing"

	"github.com/geisertalk/stklos"
)

// testVM is the VM used for all tests.
var testVM *stklos.VM

var testVMInit sync.Once

// TestingVM returns a VM for testing Scheme. The VM is shared by all
// tests that use this package.
func TestingVM() *stklos.VM {
	testVMInit.Do(ResetTestingVM)
	return testVM
}

// ResetTestingVM reinitializes the VM returned by TestingVM. It is not
// safe to call this in parallel tests.
func ResetTestingVM() {
	testVM = stklos.NewVM()
}

// A SourceTestCase is a test case containing Scheme source code and a
// predicate to check the result.
type SourceTestCase struct {
	// Source is the Scheme source code to execute.
	Source string
	// Pass is a predicate taking the result of executing Source. If
	// Pass returns false, then the test fails.
	Pass func(result stklos.Value, err error) bool
}

// TestFunc returns a test function for the test case. This uses
// TestingVM to parse and execute the code.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		vm := TestingVM()
		r, err := vm.DoString(c.Source)
		if !c.Pass(r, err) {
			if err != nil {
				t.Errorf("%q produced wrong result; an error occurred: %v", c.Source, err)
			} else {
				t.Errorf("%q produced wrong result; got %s", c.Source, stklos.WriteString(r))
			}
		}
	}
}

// PassEqual returns a Pass function that predicates on structural
// equality with want and no error.
func PassEqual(want stklos.Value) func(stklos.Value, error) bool {
	return func(result stklos.Value, err error) bool {
		return err == nil && stklos.Equal(want, result)
	}
}

// PassWritten returns a Pass function that predicates on the printed
// representation of the result and no error.
func PassWritten(want string) func(stklos.Value, error) bool {
	return func(result stklos.Value, err error) bool {
		return err == nil && stklos.WriteString(result) == want
	}
}

// PassError returns a Pass function that predicates on evaluation
// raising an error.
func PassError() func(stklos.Value, error) bool {
	return func(result stklos.Value, err error) bool {
		return err != nil
	}
}

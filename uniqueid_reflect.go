//go:build nounsafe
// +build nounsafe

package stklos

import "reflect"

// The default implementation of UniqueID uses unsafe.Pointer. If you
// can't use packages importing unsafe, you can build with
// -tags=nounsafe to select this implementation instead at a small
// performance penalty in the printer's cycle guard.

// UniqueID returns the pair's address.
func (p *Pair) UniqueID() uintptr {
	return reflect.ValueOf(p).Pointer()
}

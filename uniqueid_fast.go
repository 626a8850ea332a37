//go:build !nounsafe
// +build !nounsafe

package stklos

import "unsafe"

// Using unsafe to retrieve the pair's address is much faster than using
// reflect, which matters when the printer walks large structures.

// UniqueID returns the pair's address.
func (p *Pair) UniqueID() uintptr {
	return uintptr(unsafe.Pointer(p))
}

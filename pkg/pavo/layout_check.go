//go:build pavocheck

package pavo

import (
	"fmt"
	"unsafe"
)

func assertSameLayout[Dst, Src any]() {
	var d Dst
	var s Src
	if unsafe.Sizeof(d) != unsafe.Sizeof(s) || unsafe.Alignof(d) != unsafe.Alignof(s) {
		panic(fmt.Sprintf("pavo: reinterpret layout mismatch: %T (size %d, align %d) vs %T (size %d, align %d)",
			d, unsafe.Sizeof(d), unsafe.Alignof(d), s, unsafe.Sizeof(s), unsafe.Alignof(s)))
	}
}

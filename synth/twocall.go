package synth

import (
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
)

// Status is the outcome of one call to an enumerating entry point.
type Status int

const (
	StatusSuccess Status = iota
	StatusIncomplete
	StatusError
)

// Enumerator models an entry point following the two-call idiom. With a
// nil buffer it stores the available element count; otherwise it writes at
// most len(buf) elements and stores how many it wrote.
type Enumerator[T any] func(count *uint32, buf []T) Status

// RunTwoCall executes the sequence emitted for ShapeTwoCall bodies: query
// the count, size the storage and fill it, repeating while the fill reports
// incomplete data, then shrink to the final count.
func RunTwoCall[T any](call Enumerator[T]) ([]T, error) {
	var (
		buf    []T
		count  uint32
		status Status
	)
	for {
		status = call(&count, nil)
		if status == StatusSuccess && count > 0 {
			if cap(buf) >= int(count) {
				buf = buf[:count]
			} else {
				buf = make([]T, count)
			}
			status = call(&count, buf)
		}
		if status != StatusIncomplete {
			break
		}
	}
	if status != StatusSuccess {
		return nil, errors.Newf("enumeration failed with status %d", status)
	}
	if int(count) < len(buf) {
		buf = buf[:count]
	}
	return buf, nil
}

// Package pool provides bucketed sync.Pool instances for plane and row
// scratch buffers. Image conversions need short-lived RGB24 staging buffers
// whose size is dictated by the caller's image; pooling them by size class
// keeps the image adapters allocation-quiet across repeated conversions.
package pool

import "sync"

// Size classes, spanning thumbnail rows up to an 8K RGB24 frame.
const (
	Size4K   = 4096
	Size64K  = 65536
	Size512K = 524288
	Size2M   = 2097152
	Size8M   = 8388608
	Size32M  = 33554432
	Size128M = 134217728
)

var sizes = [...]int{Size4K, Size64K, Size512K, Size2M, Size8M, Size32M, Size128M}

// bucketIndex returns the pool index whose class covers size, or -1 when the
// request is larger than the biggest class.
func bucketIndex(size int) int {
	for i, s := range sizes {
		if size <= s {
			return i
		}
	}
	return -1
}

var pools [len(sizes)]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

// Get returns a byte slice of length size from the pool. The contents are
// unspecified; callers must not assume zeroing. Requests beyond the largest
// size class are allocated directly and will not be pooled by Put.
func Get(size int) []byte {
	idx := bucketIndex(size)
	if idx < 0 {
		return make([]byte, size)
	}
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, sizes[idx])
	}
	return b[:size]
}

// Put returns a slice obtained from Get to its pool. Slices smaller than the
// smallest size class or larger than the biggest are dropped.
func Put(b []byte) {
	c := cap(b)
	if c < Size4K {
		return
	}
	idx := bucketIndex(c)
	if idx < 0 {
		return
	}
	b = b[:c]
	pools[idx].Put(&b)
}

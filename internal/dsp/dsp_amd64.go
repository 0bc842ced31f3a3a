//go:build amd64

package dsp

import "golang.org/x/sys/cpu"

func init() {
	// Override the scalar kernels with the 32-wide batch kernels.
	// This init() runs after dsp.go's init() due to file-name ordering.
	// The batch step matches the original SSE2 kernels' 32-luma granularity.
	if cpu.X86.HasSSE2 {
		ConvertForward = rgbToYUV420Batch
		ConvertInverse = yuv420ToRGBBatch
		kernelName = "batch32"
	}
}

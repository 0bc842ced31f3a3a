//go:build arm64

package dsp

import "golang.org/x/sys/cpu"

func init() {
	// Runs after dsp.go's init() due to file-name ordering.
	if cpu.ARM64.HasASIMD {
		ConvertForward = rgbToYUV420Batch
		ConvertInverse = yuv420ToRGBBatch
		kernelName = "batch32"
	}
}

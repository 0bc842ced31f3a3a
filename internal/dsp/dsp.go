// Package dsp implements the fixed-point RGB24 <-> YUV 4:2:0 conversion
// kernels and their coefficient tables.
//
// Kernels are reached through package-level function variables so that
// platform files can swap in wider implementations at init time. The
// functions perform no argument validation; the public yuv package is the
// validation boundary.
package dsp

// ForwardFunc converts interleaved RGB24 to planar YUV 4:2:0.
type ForwardFunc func(width, height int, rgb []byte, rgbStride int, y, u, v []byte, yStride, uvStride int, p *ForwardParams)

// InverseFunc converts planar YUV 4:2:0 to interleaved RGB24.
type InverseFunc func(width, height int, y, u, v []byte, yStride, uvStride int, rgb []byte, rgbStride int, p *InverseParams)

// Conversion function variables for dispatch. Init() sets the scalar
// implementations; platform-specific files override them with the batch
// kernels when the CPU's vector capabilities warrant it.
var (
	ConvertForward ForwardFunc
	ConvertInverse InverseFunc
)

// kernelName identifies the active kernel pair, for diagnostics.
var kernelName string

// KernelName reports which kernel pair the dispatcher selected
// ("scalar" or "batch32").
func KernelName() string {
	return kernelName
}

// Init initialises the coefficient tables and resets the conversion
// function variables to their scalar implementations.
func Init() {
	initParamTables()

	ConvertForward = rgbToYUV420Scalar
	ConvertInverse = yuv420ToRGBScalar
	kernelName = "scalar"
}

func init() {
	Init()
}

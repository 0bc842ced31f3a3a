package yuv

import (
	"runtime"
	"sync"

	"github.com/deepteams/yuv/internal/dsp"
)

// Row-band parallel conversion.
//
// The 2x2 block conversion carries no state across blocks, so an image can be
// split into even-aligned row bands and converted concurrently. The only
// shared data are the immutable coefficient tables; each band writes a
// disjoint region of the destination planes. Output is identical to the
// serial functions.

// minParallelRows is the band height below which splitting is not worth the
// goroutine overhead.
const minParallelRows = 64

// RGBToYUV420Parallel is RGBToYUV420 with the work spread across up to
// workers goroutines. workers <= 0 uses GOMAXPROCS. Small images are
// converted serially.
func RGBToYUV420Parallel(width, height int, rgb []byte, rgbStride int, y, u, v []byte, yStride, uvStride int, std Standard, workers int) error {
	if err := validateArgs(width, height, len(rgb), rgbStride, len(y), len(u), len(v), yStride, uvStride, std); err != nil {
		return err
	}
	forEachBand(height, workers, func(start, bandH int) {
		RGBToYUV420Band(width, bandH, rgb[start*rgbStride:], rgbStride,
			y[start*yStride:], u[(start/2)*uvStride:], v[(start/2)*uvStride:],
			yStride, uvStride, std)
	})
	return nil
}

// YUV420ToRGBParallel is YUV420ToRGB with the work spread across up to
// workers goroutines.
func YUV420ToRGBParallel(width, height int, y, u, v []byte, yStride, uvStride int, rgb []byte, rgbStride int, std Standard, workers int) error {
	if err := validateArgs(width, height, len(rgb), rgbStride, len(y), len(u), len(v), yStride, uvStride, std); err != nil {
		return err
	}
	forEachBand(height, workers, func(start, bandH int) {
		YUV420ToRGBBand(width, bandH, y[start*yStride:], u[(start/2)*uvStride:], v[(start/2)*uvStride:],
			yStride, uvStride, rgb[start*rgbStride:], rgbStride, std)
	})
	return nil
}

// forEachBand invokes fn for consecutive even-aligned row bands, in parallel
// when the image is tall enough. start is always even; the last band absorbs
// any trailing odd row so the truncation rule is applied exactly once.
func forEachBand(height, workers int, fn func(start, bandH int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	blockRows := height / 2
	if blockRows == 0 {
		fn(0, height)
		return
	}
	if maxW := (height + minParallelRows - 1) / minParallelRows; workers > maxW {
		workers = maxW
	}
	if workers > blockRows {
		workers = blockRows
	}
	if workers <= 1 {
		fn(0, height)
		return
	}

	// Distribute whole 2x2 block rows; the remainder blocks go to the first
	// bands one at a time.
	per := blockRows / workers
	extra := blockRows % workers

	var wg sync.WaitGroup
	start := 0
	for i := 0; i < workers; i++ {
		rows := per * 2
		if i < extra {
			rows += 2
		}
		if i == workers-1 {
			rows = height - start // absorb a trailing odd row
		}
		wg.Add(1)
		go func(start, rows int) {
			defer wg.Done()
			fn(start, rows)
		}(start, rows)
		start += rows
	}
	wg.Wait()
}

// RGBToYUV420Band converts a row range of an image without re-validating
// arguments. It exists so external schedulers can drive their own tiling;
// the row range must start at an even row of the full image. Exported
// wrappers above use it for band parallelism.
func RGBToYUV420Band(width, height int, rgb []byte, rgbStride int, y, u, v []byte, yStride, uvStride int, std Standard) {
	dsp.ConvertForward(width, height, rgb, rgbStride, y, u, v, yStride, uvStride, dsp.Forward(dsp.Standard(std)))
}

// YUV420ToRGBBand converts a row range of an image without re-validating
// arguments. See RGBToYUV420Band.
func YUV420ToRGBBand(width, height int, y, u, v []byte, yStride, uvStride int, rgb []byte, rgbStride int, std Standard) {
	dsp.ConvertInverse(width, height, y, u, v, yStride, uvStride, rgb, rgbStride, dsp.Inverse(dsp.Standard(std)))
}

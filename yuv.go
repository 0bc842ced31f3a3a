package yuv

import (
	"errors"
	"fmt"

	"github.com/deepteams/yuv/internal/dsp"
)

// Standard selects the colorimetry standard used for conversion.
type Standard int

const (
	// JPEG is full-range ITU-T T.871: Y, Cb and Cr all span [0,255].
	JPEG Standard = iota
	// BT601 is ITU-R BT.601-7 limited range: Y in [16,235], Cb/Cr in [16,240].
	BT601
	// BT709 is ITU-R BT.709-6 limited range, with HD luma weights.
	BT709

	numStandards
)

// String returns the standard's conventional name.
func (s Standard) String() string {
	switch s {
	case JPEG:
		return "JPEG"
	case BT601:
		return "BT.601"
	case BT709:
		return "BT.709"
	default:
		return fmt.Sprintf("Standard(%d)", int(s))
	}
}

// Errors returned by the argument validation layer.
var (
	ErrInvalidStandard   = errors.New("yuv: invalid colorimetry standard")
	ErrInvalidDimensions = errors.New("yuv: invalid image dimensions")
	ErrInvalidStride     = errors.New("yuv: stride smaller than row size")
	ErrShortBuffer       = errors.New("yuv: buffer too small for image dimensions")
)

// RGBToYUV420 converts an interleaved RGB24 buffer to planar YUV 4:2:0.
//
// rgb holds 3 bytes per pixel at rgbStride bytes per row. The destination
// luma plane y holds one byte per pixel at yStride bytes per row; the chroma
// planes u and v hold one byte per 2x2 pixel block at uvStride bytes per row.
// All buffers are caller-owned and must not overlap.
//
// Only the even-aligned region (2*(height/2) rows by 2*(width/2) columns) is
// converted; a trailing odd row or column of the destination is left
// untouched. An image smaller than one 2x2 block is a no-op.
//
// The conversion allocates nothing and may be called concurrently, including
// on disjoint row ranges of the same image.
func RGBToYUV420(width, height int, rgb []byte, rgbStride int, y, u, v []byte, yStride, uvStride int, std Standard) error {
	if err := validateArgs(width, height, len(rgb), rgbStride, len(y), len(u), len(v), yStride, uvStride, std); err != nil {
		return err
	}
	dsp.ConvertForward(width, height, rgb, rgbStride, y, u, v, yStride, uvStride, dsp.Forward(dsp.Standard(std)))
	return nil
}

// YUV420ToRGB converts planar YUV 4:2:0 to an interleaved RGB24 buffer.
//
// Buffer layout and geometry rules match RGBToYUV420; the roles of source
// and destination are swapped. Out-of-gamut luma/chroma combinations are
// saturated to [0,255].
func YUV420ToRGB(width, height int, y, u, v []byte, yStride, uvStride int, rgb []byte, rgbStride int, std Standard) error {
	if err := validateArgs(width, height, len(rgb), rgbStride, len(y), len(u), len(v), yStride, uvStride, std); err != nil {
		return err
	}
	dsp.ConvertInverse(width, height, y, u, v, yStride, uvStride, rgb, rgbStride, dsp.Inverse(dsp.Standard(std)))
	return nil
}

// KernelName reports which conversion kernel pair was selected for this CPU
// ("scalar" or "batch32").
func KernelName() string {
	return dsp.KernelName()
}

// validateArgs is the boundary between callers and the unchecked kernels in
// internal/dsp. It enforces the minimum stride and buffer-length contract so
// the conversion loops can run without bounds surprises.
func validateArgs(width, height, rgbLen, rgbStride, yLen, uLen, vLen, yStride, uvStride int, std Standard) error {
	if std < 0 || std >= numStandards {
		return fmt.Errorf("%w: %d", ErrInvalidStandard, int(std))
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	cw := (width + 1) / 2
	ch := (height + 1) / 2
	if rgbStride < 3*width {
		return fmt.Errorf("%w: rgb stride %d < %d", ErrInvalidStride, rgbStride, 3*width)
	}
	if yStride < width {
		return fmt.Errorf("%w: luma stride %d < %d", ErrInvalidStride, yStride, width)
	}
	if uvStride < cw {
		return fmt.Errorf("%w: chroma stride %d < %d", ErrInvalidStride, uvStride, cw)
	}
	if width == 0 || height == 0 {
		return nil
	}
	if need := (height-1)*rgbStride + 3*width; rgbLen < need {
		return fmt.Errorf("%w: rgb %d < %d", ErrShortBuffer, rgbLen, need)
	}
	if need := (height-1)*yStride + width; yLen < need {
		return fmt.Errorf("%w: luma %d < %d", ErrShortBuffer, yLen, need)
	}
	if need := (ch-1)*uvStride + cw; uLen < need || vLen < need {
		return fmt.Errorf("%w: chroma %d/%d < %d", ErrShortBuffer, uLen, vLen, need)
	}
	return nil
}

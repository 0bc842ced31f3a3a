package yuv

import (
	"errors"
	"fmt"
	"image"

	"github.com/deepteams/yuv/internal/dsp"
	"github.com/deepteams/yuv/internal/pool"
)

// ErrUnsupportedRatio is returned by DecodeImage for YCbCr images whose
// subsample ratio is not 4:2:0.
var ErrUnsupportedRatio = errors.New("yuv: YCbCr image is not 4:2:0")

// EncodeImage converts an image to a planar 4:2:0 *image.YCbCr.
//
// Odd dimensions are handled by replicating the last row/column so the chroma
// box filter sees a full 2x2 block everywhere; the returned image is cropped
// back to the source size. *image.RGBA and *image.NRGBA sources take a fast
// path; any other image.Image goes through the generic At interface. The
// alpha channel is not encoded: pixels are converted premultiplied, so a
// translucent pixel darkens toward black exactly as At().RGBA() reports it.
func EncodeImage(img image.Image, std Standard) (*image.YCbCr, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}

	// Round up to even and stage the pixels as tight RGB24.
	ew, eh := (w+1)&^1, (h+1)&^1
	stride := ew * 3
	rgb := pool.Get(eh * stride)
	defer pool.Put(rgb)

	switch src := img.(type) {
	case *image.RGBA:
		packRGB(rgb, stride, src.Pix, src.Stride, b.Sub(src.Rect.Min), w, h)
	case *image.NRGBA:
		packNRGB(rgb, stride, src.Pix, src.Stride, b.Sub(src.Rect.Min), w, h)
	default:
		for row := 0; row < h; row++ {
			dst := rgb[row*stride:]
			for col := 0; col < w; col++ {
				r, g, bl, _ := img.At(b.Min.X+col, b.Min.Y+row).RGBA()
				dst[col*3] = byte(r >> 8)
				dst[col*3+1] = byte(g >> 8)
				dst[col*3+2] = byte(bl >> 8)
			}
		}
	}

	// Edge replication: duplicate the last column, then the last row.
	if ew != w {
		for row := 0; row < h; row++ {
			o := row*stride + (w-1)*3
			copy(rgb[o+3:o+6], rgb[o:o+3])
		}
	}
	if eh != h {
		copy(rgb[(eh-1)*stride:eh*stride], rgb[(h-1)*stride:(h-1)*stride+stride])
	}

	dst := image.NewYCbCr(image.Rect(0, 0, ew, eh), image.YCbCrSubsampleRatio420)
	if err := RGBToYUV420(ew, eh, rgb, stride, dst.Y, dst.Cb, dst.Cr, dst.YStride, dst.CStride, std); err != nil {
		return nil, err
	}
	if ew != w || eh != h {
		return dst.SubImage(image.Rect(0, 0, w, h)).(*image.YCbCr), nil
	}
	return dst, nil
}

// packRGB copies a w x h rectangle of premultiplied 4-byte pixels starting at
// rect.Min into a tight RGB24 buffer, dropping the alpha channel.
func packRGB(rgb []byte, rgbStride int, pix []byte, pixStride int, rect image.Rectangle, w, h int) {
	for row := 0; row < h; row++ {
		src := pix[(rect.Min.Y+row)*pixStride+rect.Min.X*4:]
		dst := rgb[row*rgbStride:]
		for col := 0; col < w; col++ {
			dst[col*3] = src[col*4]
			dst[col*3+1] = src[col*4+1]
			dst[col*3+2] = src[col*4+2]
		}
	}
}

// packNRGB is packRGB for non-premultiplied pixels. Translucent pixels are
// premultiplied with the same 16-bit arithmetic as NRGBA.RGBA(), keeping this
// path byte-identical to the generic At fallback.
func packNRGB(rgb []byte, rgbStride int, pix []byte, pixStride int, rect image.Rectangle, w, h int) {
	for row := 0; row < h; row++ {
		src := pix[(rect.Min.Y+row)*pixStride+rect.Min.X*4:]
		dst := rgb[row*rgbStride:]
		for col := 0; col < w; col++ {
			a := src[col*4+3]
			if a == 0xFF {
				dst[col*3] = src[col*4]
				dst[col*3+1] = src[col*4+1]
				dst[col*3+2] = src[col*4+2]
				continue
			}
			for c := 0; c < 3; c++ {
				v := uint32(src[col*4+c]) * 0x101
				dst[col*3+c] = byte(v * uint32(a) / 0xFF >> 8)
			}
		}
	}
}

// DecodeImage converts a planar 4:2:0 *image.YCbCr to *image.RGBA with full
// alpha. A trailing odd row or column shares the chroma sample of the block
// it belongs to, so every source pixel is converted.
func DecodeImage(img *image.YCbCr, std Standard) (*image.RGBA, error) {
	if img.SubsampleRatio != image.YCbCrSubsampleRatio420 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedRatio, img.SubsampleRatio)
	}
	b := img.Rect
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	stride := w * 3
	rgb := pool.Get(h * stride)
	defer pool.Put(rgb)

	if b.Min.X&1 == 0 && b.Min.Y&1 == 0 {
		yBase := img.YOffset(b.Min.X, b.Min.Y)
		cBase := img.COffset(b.Min.X, b.Min.Y)
		if err := YUV420ToRGB(w, h, img.Y[yBase:], img.Cb[cBase:], img.Cr[cBase:],
			img.YStride, img.CStride, rgb, stride, std); err != nil {
			return nil, err
		}
		decodeOddEdges(img, std, rgb, stride, w, h)
	} else {
		// SubImages cropped at an odd coordinate straddle 2x2 blocks; the
		// block kernel's chroma indexing does not apply, so convert pixel
		// by pixel through the plane offset accessors.
		p := dsp.Inverse(dsp.Standard(std))
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				yo := img.YOffset(b.Min.X+col, b.Min.Y+row)
				co := img.COffset(b.Min.X+col, b.Min.Y+row)
				dsp.PixelRGB(p, img.Y[yo], img.Cb[co], img.Cr[co], rgb[row*stride+col*3:])
			}
		}
	}

	for row := 0; row < h; row++ {
		src := rgb[row*stride:]
		dst := out.Pix[row*out.Stride:]
		for col := 0; col < w; col++ {
			dst[col*4] = src[col*3]
			dst[col*4+1] = src[col*3+1]
			dst[col*4+2] = src[col*3+2]
			dst[col*4+3] = 0xFF
		}
	}
	return out, nil
}

// decodeOddEdges fills the trailing odd row/column the block kernel skips.
// Those pixels still have a covering chroma sample in a 4:2:0 image.
func decodeOddEdges(img *image.YCbCr, std Standard, rgb []byte, stride, w, h int) {
	if w&1 == 0 && h&1 == 0 {
		return
	}
	p := dsp.Inverse(dsp.Standard(std))
	b := img.Rect
	if w&1 == 1 {
		col := w - 1
		for row := 0; row < h; row++ {
			yo := img.YOffset(b.Min.X+col, b.Min.Y+row)
			co := img.COffset(b.Min.X+col, b.Min.Y+row)
			dsp.PixelRGB(p, img.Y[yo], img.Cb[co], img.Cr[co], rgb[row*stride+col*3:])
		}
	}
	if h&1 == 1 {
		row := h - 1
		for col := 0; col < w; col++ {
			yo := img.YOffset(b.Min.X+col, b.Min.Y+row)
			co := img.COffset(b.Min.X+col, b.Min.Y+row)
			dsp.PixelRGB(p, img.Y[yo], img.Cb[co], img.Cr[co], rgb[row*stride+col*3:])
		}
	}
}

package dsp

// Scalar RGB24 <-> planar YUV 4:2:0 conversion kernels.
//
// Both directions walk the image in 2x2 pixel blocks. Only the even-aligned
// region (rows 0..2*(height/2), columns 0..2*(width/2)) is touched; a trailing
// odd row or column is left as-is. This truncation is intentional and part of
// the contract — callers that need the last row/column converted must pad.
//
// The kernels perform no validation and no allocation. Buffers must be
// correctly sized, non-overlapping and remain valid for the duration of the
// call; the public package is responsible for checking that.

// clamp saturates v to the [0,255] byte range.
func clamp(v int32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// PixelRGB converts a single YUV sample to RGB using the same fixed-point
// math as the block kernels. Used for pixels outside the even-aligned region,
// where a 2x2 block does not exist but a chroma sample still covers the pixel.
// rgb must hold at least 3 bytes.
func PixelRGB(p *InverseParams, yv, uv, vv byte, rgb []byte) {
	ut := int32(uv) - 128
	vt := int32(vv) - 128
	yt := (p.YFactor * (int32(yv) - p.YOffset)) >> 7
	rgb[0] = clamp(yt + (p.CrFactor*vt)>>6)
	rgb[1] = clamp(yt - (p.GCbFactor*ut+p.GCrFactor*vt)>>7)
	rgb[2] = clamp(yt + (p.CbFactor*ut)>>6)
}

// rgbToYUV420Scalar converts an interleaved RGB24 buffer to planar YUV 4:2:0.
//
// For each pixel a full-range pseudo luma Y' is computed with the 8-bit
// factors, then rescaled to the digital range with the 7-bit YFactor. The
// four per-pixel chroma contributions of a 2x2 block are summed and divided
// by 4 with a truncating shift (box filter); the result is one U and one V
// sample per block. No clamping: standard-conformant coefficients keep every
// intermediate inside [0,255] by construction.
func rgbToYUV420Scalar(width, height int, rgb []byte, rgbStride int, y, u, v []byte, yStride, uvStride int, p *ForwardParams) {
	rf, gf, bf := p.RFactor, p.GFactor, p.BFactor
	cbf, crf := p.CbFactor, p.CrFactor
	yf, yoff := p.YFactor, p.YOffset

	for row := 0; row+1 < height; row += 2 {
		rgb1 := rgb[row*rgbStride:]
		rgb2 := rgb[(row+1)*rgbStride:]
		y1 := y[row*yStride:]
		y2 := y[(row+1)*yStride:]
		uRow := u[(row/2)*uvStride:]
		vRow := v[(row/2)*uvStride:]

		for col := 0; col+1 < width; col += 2 {
			o := col * 3
			var uSum, vSum int32

			yt := (rf*int32(rgb1[o]) + gf*int32(rgb1[o+1]) + bf*int32(rgb1[o+2])) >> 8
			uSum = ((int32(rgb1[o+2])-yt)*cbf)>>8 + 128
			vSum = ((int32(rgb1[o])-yt)*crf)>>8 + 128
			y1[col] = byte((yt*yf)>>7 + yoff)

			yt = (rf*int32(rgb1[o+3]) + gf*int32(rgb1[o+4]) + bf*int32(rgb1[o+5])) >> 8
			uSum += ((int32(rgb1[o+5])-yt)*cbf)>>8 + 128
			vSum += ((int32(rgb1[o+3])-yt)*crf)>>8 + 128
			y1[col+1] = byte((yt*yf)>>7 + yoff)

			yt = (rf*int32(rgb2[o]) + gf*int32(rgb2[o+1]) + bf*int32(rgb2[o+2])) >> 8
			uSum += ((int32(rgb2[o+2])-yt)*cbf)>>8 + 128
			vSum += ((int32(rgb2[o])-yt)*crf)>>8 + 128
			y2[col] = byte((yt*yf)>>7 + yoff)

			yt = (rf*int32(rgb2[o+3]) + gf*int32(rgb2[o+4]) + bf*int32(rgb2[o+5])) >> 8
			uSum += ((int32(rgb2[o+5])-yt)*cbf)>>8 + 128
			vSum += ((int32(rgb2[o+3])-yt)*crf)>>8 + 128
			y2[col+1] = byte((yt*yf)>>7 + yoff)

			uRow[col/2] = byte(uSum >> 2)
			vRow[col/2] = byte(vSum >> 2)
		}
	}
}

// yuv420ToRGBScalar converts planar YUV 4:2:0 to an interleaved RGB24 buffer.
//
// One chroma sample is shared by all four pixels of a 2x2 block
// (nearest-neighbor upsampling). The three chroma offsets are computed once
// per block; each luma sample is rescaled to full range independently. This
// is the one direction where clamping is mandatory: extreme chroma/luma
// combinations legitimately overshoot [0,255].
func yuv420ToRGBScalar(width, height int, y, u, v []byte, yStride, uvStride int, rgb []byte, rgbStride int, p *InverseParams) {
	cbf, crf := p.CbFactor, p.CrFactor
	gcbf, gcrf := p.GCbFactor, p.GCrFactor
	yf, yoff := p.YFactor, p.YOffset

	for row := 0; row+1 < height; row += 2 {
		y1 := y[row*yStride:]
		y2 := y[(row+1)*yStride:]
		uRow := u[(row/2)*uvStride:]
		vRow := v[(row/2)*uvStride:]
		rgb1 := rgb[row*rgbStride:]
		rgb2 := rgb[(row+1)*rgbStride:]

		for col := 0; col+1 < width; col += 2 {
			ut := int32(uRow[col/2]) - 128
			vt := int32(vRow[col/2]) - 128

			// Chroma offsets are common to the four pixels of the block.
			bOff := (cbf * ut) >> 6
			rOff := (crf * vt) >> 6
			gOff := (gcbf*ut + gcrf*vt) >> 7

			o := col * 3

			yt := (yf * (int32(y1[col]) - yoff)) >> 7
			rgb1[o] = clamp(yt + rOff)
			rgb1[o+1] = clamp(yt - gOff)
			rgb1[o+2] = clamp(yt + bOff)

			yt = (yf * (int32(y1[col+1]) - yoff)) >> 7
			rgb1[o+3] = clamp(yt + rOff)
			rgb1[o+4] = clamp(yt - gOff)
			rgb1[o+5] = clamp(yt + bOff)

			yt = (yf * (int32(y2[col]) - yoff)) >> 7
			rgb2[o] = clamp(yt + rOff)
			rgb2[o+1] = clamp(yt - gOff)
			rgb2[o+2] = clamp(yt + bOff)

			yt = (yf * (int32(y2[col+1]) - yoff)) >> 7
			rgb2[o+3] = clamp(yt + rOff)
			rgb2[o+4] = clamp(yt - gOff)
			rgb2[o+5] = clamp(yt + bOff)
		}
	}
}

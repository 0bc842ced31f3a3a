// Package yuv converts images between interleaved 8-bit RGB24 and planar
// YUV 4:2:0, the layout used by JPEG, most video codecs and V4L2 capture
// pipelines.
//
// Three colorimetry standards are supported: full-range JPEG (ITU-T T.871)
// and the limited-range BT.601 and BT.709 studio encodings. All arithmetic
// is fixed point and deterministic: a given input produces the same output
// bytes on every platform, whether the scalar or the wide-batch kernel runs.
//
// The package supports:
//   - RGB24 → YUV 4:2:0 with a 2x2 box-filtered chroma downsample
//   - YUV 4:2:0 → RGB24 with nearest-neighbor chroma upsampling and
//     saturation to [0,255]
//   - image.Image adapters producing and consuming *image.YCbCr
//   - Row-band parallel conversion for large frames
//
// Basic usage on raw planes:
//
//	err := yuv.RGBToYUV420(w, h, rgb, w*3, y, u, v, w, (w+1)/2, yuv.BT601)
//
// Basic usage on images:
//
//	frame, err := yuv.EncodeImage(img, yuv.JPEG)
package yuv

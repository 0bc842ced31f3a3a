// Command gyuv converts between still images and raw YUV4MPEG2 (.y4m) video.
//
// Usage:
//
//	gyuv enc [options] <input>       PNG/JPEG/GIF/BMP → .y4m (use "-" for stdin)
//	gyuv dec [options] <input.y4m>   .y4m frame → PNG/JPEG/BMP (use "-" for stdin, -o - for stdout)
//	gyuv info <input.y4m>            Display stream metadata
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/deepteams/yuv"
	"github.com/deepteams/yuv/internal/y4m"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "enc":
		err = runEnc(os.Args[2:])
	case "dec":
		err = runDec(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "gyuv: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "gyuv: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  gyuv enc [options] <input>       Encode PNG/JPEG/GIF/BMP to a .y4m stream
  gyuv dec [options] <input.y4m>   Decode a .y4m frame to PNG, JPEG, or BMP
  gyuv info <input.y4m>            Display stream metadata

Use "-" as input to read from stdin, "-o -" to write to stdout.

Run "gyuv <command> -h" for command-specific options.
`)
}

// openInput returns an io.ReadCloser for the given path.
// If path is "-", stdin is returned (caller should not close).
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func parseStandard(s string) (yuv.Standard, error) {
	switch strings.ToLower(s) {
	case "jpeg", "full":
		return yuv.JPEG, nil
	case "bt601", "601":
		return yuv.BT601, nil
	case "bt709", "709":
		return yuv.BT709, nil
	default:
		return 0, fmt.Errorf("unknown standard %q (use jpeg/bt601/bt709)", s)
	}
}

// --- enc ---

func runEnc(args []string) error {
	fs := flag.NewFlagSet("enc", flag.ContinueOnError)
	std := fs.String("std", "jpeg", "colorimetry standard: jpeg/bt601/bt709")
	rate := fs.String("rate", "25:1", "frame rate as num:den")
	output := fs.String("o", "", `output path (default: <input>.y4m, "-" for stdout)`)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("enc: missing input file\nUsage: gyuv enc [options] <input>")
	}
	inputPath := fs.Arg(0)

	standard, err := parseStandard(*std)
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}
	rateNum, rateDen, err := parseRate(*rate)
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("enc: decoding input: %w", err)
	}

	frame, err := yuv.EncodeImage(img, standard)
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}

	// Full-range material is tagged C420jpeg; limited range uses C420mpeg2
	// (chroma sited like our box filter, one sample per 2x2 block).
	colorSpace := y4m.C420JPEG
	if standard != yuv.JPEG {
		colorSpace = y4m.C420MPEG2
	}
	hdr := y4m.Header{
		Width:      frame.Rect.Dx(),
		Height:     frame.Rect.Dy(),
		RateNum:    rateNum,
		RateDen:    rateDen,
		ColorSpace: colorSpace,
	}

	writeStream := func(w io.Writer) error {
		sw, err := y4m.NewWriter(w, hdr)
		if err != nil {
			return err
		}
		yp, up, vp := tightPlanes(frame)
		return sw.WriteFrame(yp, up, vp)
	}

	if *output == "-" {
		return writeStream(os.Stdout)
	}
	outputPath := *output
	if outputPath == "" {
		if inputPath == "-" {
			outputPath = "output.y4m"
		} else {
			base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
			outputPath = base + ".y4m"
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := writeStream(out); err != nil {
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("enc: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return err
	}

	fi, _ := os.Stat(outputPath)
	fmt.Fprintf(os.Stderr, "Encoded %s → %s (%dx%d %s, %d bytes)\n",
		inputPath, outputPath, hdr.Width, hdr.Height, standard, fi.Size())
	return nil
}

func parseRate(s string) (num, den int, err error) {
	n, d, ok := strings.Cut(s, ":")
	if ok {
		if _, err := fmt.Sscanf(n+" "+d, "%d %d", &num, &den); err == nil && num > 0 && den > 0 {
			return num, den, nil
		}
	}
	return 0, 0, fmt.Errorf("bad frame rate %q (want num:den)", s)
}

// tightPlanes copies a 4:2:0 image's planes into tight buffers, dropping any
// stride padding and the plane bytes outside the image rectangle.
func tightPlanes(img *image.YCbCr) (y, u, v []byte) {
	b := img.Rect
	w, h := b.Dx(), b.Dy()
	cw, ch := (w+1)/2, (h+1)/2

	y = make([]byte, w*h)
	for row := 0; row < h; row++ {
		o := img.YOffset(b.Min.X, b.Min.Y+row)
		copy(y[row*w:(row+1)*w], img.Y[o:o+w])
	}
	u = make([]byte, cw*ch)
	v = make([]byte, cw*ch)
	for row := 0; row < ch; row++ {
		o := img.COffset(b.Min.X, b.Min.Y+2*row)
		copy(u[row*cw:(row+1)*cw], img.Cb[o:o+cw])
		copy(v[row*cw:(row+1)*cw], img.Cr[o:o+cw])
	}
	return y, u, v
}

// --- dec ---

func runDec(args []string) error {
	fs := flag.NewFlagSet("dec", flag.ContinueOnError)
	std := fs.String("std", "", "colorimetry standard override: jpeg/bt601/bt709 (default: from stream tag)")
	frameIdx := fs.Int("frame", 0, "frame index to extract")
	fmtFlag := fs.String("fmt", "", "output format: png, jpeg, bmp (auto-detect from extension if omitted)")
	output := fs.String("o", "", `output path (default: <input>.png, "-" for stdout)`)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("dec: missing input file\nUsage: gyuv dec [options] <input.y4m>")
	}
	inputPath := fs.Arg(0)

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	sr, err := y4m.NewReader(in)
	if err != nil {
		return fmt.Errorf("dec: %w", err)
	}
	hdr := sr.Header()

	standard := yuv.BT601
	if hdr.FullRange() {
		standard = yuv.JPEG
	}
	if *std != "" {
		standard, err = parseStandard(*std)
		if err != nil {
			return fmt.Errorf("dec: %w", err)
		}
	}

	var yp, up, vp []byte
	for i := 0; ; i++ {
		yp, up, vp, err = sr.ReadFrame()
		if err == io.EOF {
			return fmt.Errorf("dec: stream has no frame %d", *frameIdx)
		}
		if err != nil {
			return fmt.Errorf("dec: %w", err)
		}
		if i == *frameIdx {
			break
		}
	}

	frame := &image.YCbCr{
		Y:              yp,
		Cb:             up,
		Cr:             vp,
		YStride:        hdr.Width,
		CStride:        (hdr.Width + 1) / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, hdr.Width, hdr.Height),
	}
	img, err := yuv.DecodeImage(frame, standard)
	if err != nil {
		return fmt.Errorf("dec: %w", err)
	}

	outFmt := detectOutputFormat(*fmtFlag, *output)

	if *output == "-" {
		return encodeImage(os.Stdout, img, outFmt)
	}
	outputPath := *output
	if outputPath == "" {
		ext := "." + outFmt
		if outFmt == "jpeg" {
			ext = ".jpg"
		}
		if inputPath == "-" {
			outputPath = "output" + ext
		} else {
			base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
			outputPath = base + ext
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := encodeImage(out, img, outFmt); err != nil {
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("dec: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return err
	}

	fmt.Fprintf(os.Stderr, "Decoded %s frame %d → %s (%dx%d %s)\n",
		inputPath, *frameIdx, outputPath, hdr.Width, hdr.Height, standard)
	return nil
}

// detectOutputFormat returns "png", "jpeg", or "bmp" based on flag/extension.
func detectOutputFormat(fmtFlag, outputPath string) string {
	if fmtFlag != "" {
		return strings.ToLower(fmtFlag)
	}
	if outputPath != "" && outputPath != "-" {
		switch strings.ToLower(filepath.Ext(outputPath)) {
		case ".jpg", ".jpeg":
			return "jpeg"
		case ".bmp":
			return "bmp"
		}
	}
	return "png"
}

// encodeImage writes img in the specified format to w.
func encodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case "jpeg", "jpg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

// --- info ---

func runInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("info: missing input file\nUsage: gyuv info <input.y4m>")
	}
	inputPath := args[0]

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	sr, err := y4m.NewReader(in)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}
	hdr := sr.Header()

	frames := 0
	for {
		if _, _, _, err := sr.ReadFrame(); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("info: frame %d: %w", frames, err)
		}
		frames++
	}

	name := inputPath
	if inputPath == "-" {
		name = "<stdin>"
	}

	fmt.Printf("File:       %s\n", name)
	fmt.Printf("Dimensions: %d x %d\n", hdr.Width, hdr.Height)
	fmt.Printf("Frame rate: %d:%d\n", hdr.RateNum, hdr.RateDen)
	fmt.Printf("Colorspace: C%s\n", hdr.ColorSpace)
	fmt.Printf("Full range: %v\n", hdr.FullRange())
	fmt.Printf("Frames:     %d\n", frames)
	fmt.Printf("Kernel:     %s\n", yuv.KernelName())

	if inputPath != "-" {
		fi, err := os.Stat(inputPath)
		if err == nil {
			fmt.Printf("File size:  %d bytes\n", fi.Size())
		}
	}

	return nil
}

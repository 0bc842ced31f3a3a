// Package y4m reads and writes YUV4MPEG2 streams carrying 4:2:0 frames.
//
// YUV4MPEG2 is the conventional raw-video interchange format: one ASCII
// stream header, then for each frame the line "FRAME" followed by the tightly
// packed Y, Cb and Cr planes. Only 4:2:0 chroma layouts are supported here;
// the colorspace tag distinguishes full-range (C420jpeg) from limited-range
// (C420, C420mpeg2, C420paldv) material.
package y4m

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const magic = "YUV4MPEG2"

var (
	ErrBadHeader   = errors.New("y4m: malformed stream header")
	ErrBadFrame    = errors.New("y4m: malformed frame marker")
	ErrUnsupported = errors.New("y4m: unsupported colorspace")
)

// Supported colorspace tags (the value of the C header parameter).
const (
	C420JPEG  = "420jpeg"
	C420MPEG2 = "420mpeg2"
	C420PalDV = "420paldv"
	C420Plain = "420"
)

// Header describes a YUV4MPEG2 stream.
type Header struct {
	Width, Height    int
	RateNum, RateDen int    // frame rate as a fraction; 0/0 if absent
	ColorSpace       string // one of the C420* tags
}

// FullRange reports whether the stream's colorspace tag declares full-range
// (JPEG-style) quantization.
func (h Header) FullRange() bool {
	return h.ColorSpace == C420JPEG
}

// planeSizes returns the tight plane sizes for one frame.
func (h Header) planeSizes() (ySize, cSize int) {
	cw := (h.Width + 1) / 2
	ch := (h.Height + 1) / 2
	return h.Width * h.Height, cw * ch
}

// FrameSize returns the number of payload bytes in one frame.
func (h Header) FrameSize() int {
	ySize, cSize := h.planeSizes()
	return ySize + 2*cSize
}

func (h Header) validate() error {
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadHeader, h.Width, h.Height)
	}
	switch h.ColorSpace {
	case C420JPEG, C420MPEG2, C420PalDV, C420Plain:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupported, h.ColorSpace)
}

// A Writer emits a YUV4MPEG2 stream.
type Writer struct {
	w   io.Writer
	hdr Header
}

// NewWriter writes the stream header for hdr and returns a frame writer.
// A zero frame rate is emitted as 25:1, the format's customary default.
func NewWriter(w io.Writer, hdr Header) (*Writer, error) {
	if hdr.ColorSpace == "" {
		hdr.ColorSpace = C420JPEG
	}
	if err := hdr.validate(); err != nil {
		return nil, err
	}
	if hdr.RateNum <= 0 || hdr.RateDen <= 0 {
		hdr.RateNum, hdr.RateDen = 25, 1
	}
	_, err := fmt.Fprintf(w, "%s W%d H%d F%d:%d Ip A1:1 C%s\n",
		magic, hdr.Width, hdr.Height, hdr.RateNum, hdr.RateDen, hdr.ColorSpace)
	if err != nil {
		return nil, err
	}
	return &Writer{w: w, hdr: hdr}, nil
}

// Header returns the header the stream was opened with.
func (w *Writer) Header() Header { return w.hdr }

// WriteFrame appends one frame. The planes must be tightly packed at the
// stream's dimensions.
func (w *Writer) WriteFrame(y, u, v []byte) error {
	ySize, cSize := w.hdr.planeSizes()
	if len(y) != ySize || len(u) != cSize || len(v) != cSize {
		return fmt.Errorf("y4m: frame plane sizes %d/%d/%d, want %d/%d/%d",
			len(y), len(u), len(v), ySize, cSize, cSize)
	}
	if _, err := io.WriteString(w.w, "FRAME\n"); err != nil {
		return err
	}
	for _, plane := range [][]byte{y, u, v} {
		if _, err := w.w.Write(plane); err != nil {
			return err
		}
	}
	return nil
}

// A Reader consumes a YUV4MPEG2 stream.
type Reader struct {
	br  *bufio.Reader
	hdr Header
}

// NewReader parses the stream header and returns a frame reader.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	hdr, err := parseHeader(strings.TrimSuffix(line, "\n"))
	if err != nil {
		return nil, err
	}
	return &Reader{br: br, hdr: hdr}, nil
}

// Header returns the parsed stream header.
func (r *Reader) Header() Header { return r.hdr }

func parseHeader(line string) (Header, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != magic {
		return Header{}, fmt.Errorf("%w: missing %s magic", ErrBadHeader, magic)
	}
	hdr := Header{ColorSpace: C420JPEG} // the format's implied default is 420jpeg
	for _, f := range fields[1:] {
		tag, val := f[0], f[1:]
		switch tag {
		case 'W':
			n, err := strconv.Atoi(val)
			if err != nil {
				return Header{}, fmt.Errorf("%w: width %q", ErrBadHeader, val)
			}
			hdr.Width = n
		case 'H':
			n, err := strconv.Atoi(val)
			if err != nil {
				return Header{}, fmt.Errorf("%w: height %q", ErrBadHeader, val)
			}
			hdr.Height = n
		case 'F':
			num, den, ok := strings.Cut(val, ":")
			if ok {
				hdr.RateNum, _ = strconv.Atoi(num)
				hdr.RateDen, _ = strconv.Atoi(den)
			}
		case 'C':
			hdr.ColorSpace = val
		case 'I', 'A', 'X':
			// Interlacing, pixel aspect and extensions do not affect the
			// pixel payload; accepted and ignored.
		default:
			return Header{}, fmt.Errorf("%w: unknown parameter %q", ErrBadHeader, f)
		}
	}
	if err := hdr.validate(); err != nil {
		return Header{}, err
	}
	return hdr, nil
}

// ReadFrame reads the next frame into freshly allocated tight planes.
// It returns io.EOF at a clean end of stream.
func (r *Reader) ReadFrame() (y, u, v []byte, err error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line == "" {
			return nil, nil, nil, io.EOF
		}
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	line = strings.TrimSuffix(line, "\n")
	if line != "FRAME" && !strings.HasPrefix(line, "FRAME ") {
		return nil, nil, nil, fmt.Errorf("%w: %q", ErrBadFrame, line)
	}

	ySize, cSize := r.hdr.planeSizes()
	y = make([]byte, ySize)
	u = make([]byte, cSize)
	v = make([]byte, cSize)
	for _, plane := range [][]byte{y, u, v} {
		if _, err := io.ReadFull(r.br, plane); err != nil {
			return nil, nil, nil, fmt.Errorf("y4m: short frame payload: %w", err)
		}
	}
	return y, u, v, nil
}

package y4m

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
)

func TestWriterHeaderLine(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewWriter(&buf, Header{Width: 320, Height: 240, RateNum: 30, RateDen: 1, ColorSpace: C420JPEG})
	if err != nil {
		t.Fatal(err)
	}
	want := "YUV4MPEG2 W320 H240 F30:1 Ip A1:1 C420jpeg\n"
	if got := buf.String(); got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
}

func TestWriterDefaults(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, Header{Width: 2, Height: 2})
	if err != nil {
		t.Fatal(err)
	}
	hdr := w.Header()
	if hdr.ColorSpace != C420JPEG || hdr.RateNum != 25 || hdr.RateDen != 1 {
		t.Errorf("defaults = %+v", hdr)
	}
}

func TestWriteFramePlaneSizeCheck(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, Header{Width: 4, Height: 4})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFrame(make([]byte, 16), make([]byte, 4), make([]byte, 3)); err == nil {
		t.Error("short chroma plane accepted")
	}
}

func TestRoundTrip(t *testing.T) {
	const w, h, frames = 6, 4, 3
	rng := rand.New(rand.NewSource(301))

	var buf bytes.Buffer
	wr, err := NewWriter(&buf, Header{Width: w, Height: h, RateNum: 24, RateDen: 1, ColorSpace: C420MPEG2})
	if err != nil {
		t.Fatal(err)
	}
	var sent [frames][3][]byte
	for i := 0; i < frames; i++ {
		y := make([]byte, w*h)
		u := make([]byte, (w/2)*(h/2))
		v := make([]byte, (w/2)*(h/2))
		rng.Read(y)
		rng.Read(u)
		rng.Read(v)
		sent[i] = [3][]byte{y, u, v}
		if err := wr.WriteFrame(y, u, v); err != nil {
			t.Fatal(err)
		}
	}

	rd, err := NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	hdr := rd.Header()
	if hdr.Width != w || hdr.Height != h || hdr.RateNum != 24 || hdr.ColorSpace != C420MPEG2 {
		t.Fatalf("header = %+v", hdr)
	}
	if hdr.FullRange() {
		t.Error("C420mpeg2 reported as full range")
	}
	for i := 0; i < frames; i++ {
		y, u, v, err := rd.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if !bytes.Equal(y, sent[i][0]) || !bytes.Equal(u, sent[i][1]) || !bytes.Equal(v, sent[i][2]) {
			t.Errorf("frame %d: payload mismatch", i)
		}
	}
	if _, _, _, err := rd.ReadFrame(); err != io.EOF {
		t.Errorf("after last frame: err = %v, want io.EOF", err)
	}
}

func TestReaderAcceptsFrameParameters(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("YUV4MPEG2 W2 H2 F25:1 Ip A1:1 C420jpeg XYSCSS=420JPEG\n")
	buf.WriteString("FRAME Ip\n")
	buf.Write(make([]byte, 2*2+2*1))

	rd, err := NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := rd.ReadFrame(); err != nil {
		t.Errorf("frame with parameters: %v", err)
	}
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"wrong_magic", "MPEG4YUV2 W2 H2\n", ErrBadHeader},
		{"missing_width", "YUV4MPEG2 H2\n", ErrBadHeader},
		{"bad_width", "YUV4MPEG2 Wx H2\n", ErrBadHeader},
		{"unknown_param", "YUV4MPEG2 W2 H2 Q9\n", ErrBadHeader},
		{"colorspace_444", "YUV4MPEG2 W2 H2 C444\n", ErrUnsupported},
		{"colorspace_422", "YUV4MPEG2 W2 H2 C422\n", ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReaderBadFrameMarker(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("YUV4MPEG2 W2 H2\n")
	buf.WriteString("FRAMY\n")
	rd, err := NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := rd.ReadFrame(); !errors.Is(err, ErrBadFrame) {
		t.Errorf("err = %v, want ErrBadFrame", err)
	}
}

func TestReaderTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("YUV4MPEG2 W4 H4\n")
	buf.WriteString("FRAME\n")
	buf.Write(make([]byte, 10)) // frame needs 16+4+4 bytes
	rd, err := NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := rd.ReadFrame(); err == nil {
		t.Error("truncated payload accepted")
	}
}

func TestFrameSizeOddDims(t *testing.T) {
	hdr := Header{Width: 5, Height: 3, ColorSpace: C420JPEG}
	if got, want := hdr.FrameSize(), 5*3+2*(3*2); got != want {
		t.Errorf("FrameSize = %d, want %d", got, want)
	}
}

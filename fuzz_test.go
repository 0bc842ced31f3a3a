package yuv

import (
	"bytes"
	"testing"
)

// fuzzDims derives image dimensions and a standard from the first bytes of
// fuzzer input, keeping sizes small enough to stay fast.
func fuzzDims(data []byte) (w, h int, std Standard, rest []byte) {
	w = int(data[0]%96) + 1
	h = int(data[1]%96) + 1
	std = Standard(data[2] % 3)
	return w, h, std, data[3:]
}

func padTo(data []byte, n int) []byte {
	if len(data) >= n {
		return data[:n]
	}
	padded := make([]byte, n)
	copy(padded, data)
	return padded
}

// FuzzRGBToYUV420 feeds arbitrary pixel data through the forward conversion
// and checks the limited-range output invariant: every converted luma sample
// lands inside the standard's digital range, with no clamping in the kernel.
func FuzzRGBToYUV420(f *testing.F) {
	seed := make([]byte, 3+16*16*3)
	for i := range seed {
		seed[i] = byte(i * 5)
	}
	f.Add(seed)
	f.Add([]byte{95, 95, 1, 255, 0, 128})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) < 3 {
			return
		}
		w, h, std, rest := fuzzDims(data)
		rgb := padTo(rest, h*w*3)
		cw, ch := (w+1)/2, (h+1)/2
		y := make([]byte, h*w)
		u := make([]byte, ch*cw)
		v := make([]byte, ch*cw)
		if err := RGBToYUV420(w, h, rgb, w*3, y, u, v, w, cw, std); err != nil {
			t.Fatalf("%dx%d %v: %v", w, h, std, err)
		}
		if std == JPEG {
			return
		}
		for row := 0; row+1 < h; row += 2 {
			for col := 0; col < 2*(w/2); col++ {
				for _, s := range []byte{y[row*w+col], y[(row+1)*w+col]} {
					if s < 16 || s > 235 {
						t.Fatalf("%dx%d %v: luma %d outside [16,235]", w, h, std, s)
					}
				}
			}
		}
	})
}

// FuzzYUV420ToRGB checks totality of the inverse conversion: every byte
// combination in the planes is a valid input and converts without panicking,
// with identical results on a repeat run.
func FuzzYUV420ToRGB(f *testing.F) {
	seed := make([]byte, 3+16*16*2)
	for i := range seed {
		seed[i] = byte(i * 11)
	}
	f.Add(seed)
	f.Add([]byte{1, 1, 0, 0, 255, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) < 3 {
			return
		}
		w, h, std, rest := fuzzDims(data)
		cw, ch := (w+1)/2, (h+1)/2
		y := padTo(rest, h*w)
		u := padTo(rest, ch*cw)
		v := padTo(rest, ch*cw)

		rgb := make([]byte, h*w*3)
		if err := YUV420ToRGB(w, h, y, u, v, w, cw, rgb, w*3, std); err != nil {
			t.Fatalf("%dx%d %v: %v", w, h, std, err)
		}
		again := make([]byte, len(rgb))
		if err := YUV420ToRGB(w, h, y, u, v, w, cw, again, w*3, std); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(rgb, again) {
			t.Fatalf("%dx%d %v: conversion is not deterministic", w, h, std)
		}
	})
}

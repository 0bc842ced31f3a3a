package yuv_test

import (
	"fmt"
	"image"
	"image/color"

	"github.com/deepteams/yuv"
)

func ExampleRGBToYUV420() {
	// A 2x2 white image: one luma sample per pixel, one chroma pair
	// for the whole block.
	const w, h = 2, 2
	rgb := make([]byte, w*h*3)
	for i := range rgb {
		rgb[i] = 255
	}

	y := make([]byte, w*h)
	u := make([]byte, 1)
	v := make([]byte, 1)
	if err := yuv.RGBToYUV420(w, h, rgb, w*3, y, u, v, w, 1, yuv.BT601); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Y=%d U=%d V=%d\n", y[0], u[0], v[0])
	// Output:
	// Y=235 U=128 V=128
}

func ExampleYUV420ToRGB() {
	// Mid-gray in full-range YUV is luma 100 with neutral chroma.
	const w, h = 2, 2
	y := []byte{100, 100, 100, 100}
	u := []byte{128}
	v := []byte{128}

	rgb := make([]byte, w*h*3)
	if err := yuv.YUV420ToRGB(w, h, y, u, v, w, 1, rgb, w*3, yuv.JPEG); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("R=%d G=%d B=%d\n", rgb[0], rgb[1], rgb[2])
	// Output:
	// R=100 G=100 B=100
}

func ExampleEncodeImage() {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 100, G: 150, B: 200, A: 255})
		}
	}

	frame, err := yuv.EncodeImage(img, yuv.JPEG)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(frame.SubsampleRatio)
	fmt.Printf("Y=%d Cb=%d Cr=%d\n", frame.Y[0], frame.Cb[0], frame.Cr[0])
	// Output:
	// YCbCrSubsampleRatio420
	// Y=140 Cb=161 Cr=99
}

func ExampleDecodeImage() {
	// Full-range grays survive the round trip exactly.
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	frame, err := yuv.EncodeImage(img, yuv.JPEG)
	if err != nil {
		fmt.Println(err)
		return
	}
	back, err := yuv.DecodeImage(frame, yuv.JPEG)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(back.RGBAAt(0, 0))
	// Output:
	// {128 128 128 255}
}

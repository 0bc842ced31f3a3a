package dsp

// Fixed-point coefficient derivation for RGB <-> YCbCr conversion.
//
// Definitions
//
// E'R, E'G, E'B, E'Y, E'Cb and E'Cr refer to the analog signals.
// E'R, E'G, E'B and E'Y range is [0:1], while E'Cb and E'Cr range is
// [-0.5:0.5]. The digitalized values use either the full 8-bit range
// ([0:255]) or a subrange (typically [16:235] for Y and [16:240] for CbCr).
// RGB is always assumed to be full range [0:255].
//
// In the analog domain the transform is
//
//	E'Y  = Kr*E'R + Kg*E'G + Kb*E'B        with Kr + Kg + Kb = 1
//	E'Cb = (E'B - E'Y) / (2*(1-Kb))
//	E'Cr = (E'R - E'Y) / (2*(1-Kr))
//
// All runtime arithmetic is fixed point. [x] below denotes round-half-up
// to N fractional bits, that is int(x*(1<<N) + 0.5).
//
// Forward (RGB -> YUV), N=8 for the factors and N=7 for the luma rescale:
//
//	Y' = ([Kr]*R + [Kg]*G + [Kb]*B) >> 8           (full-range pseudo luma)
//	Cb = ((B - Y')*[CbRange/(255*2*(1-Kb))]) >> 8 + 128
//	Cr = ((R - Y')*[CrRange/(255*2*(1-Kr))]) >> 8 + 128
//	Y  = (Y'*[(YMax-YMin)/255]) >> 7 + YMin
//
// Inverse (YUV -> RGB), N=6 for the chroma scale and N=7 elsewhere:
//
//	Y' = ((Y-YMin)*[255/(YMax-YMin)]) >> 7
//	B  = Y' + ((Cb-128)*[255*2*(1-Kb)/CbRange]) >> 6
//	R  = Y' + ((Cr-128)*[255*2*(1-Kr)/CrRange]) >> 6
//	G  = Y' - ((Cb-128)*[Kb/Kg*255*2*(1-Kb)/CbRange] +
//	           (Cr-128)*[Kr/Kg*255*2*(1-Kr)/CrRange]) >> 7
//
// Since Kg = 1-Kr-Kb, the luma term factors out of the green correction,
// which is what allows G to reuse the same Y' as R and B.

// Standard selects one of the supported colorimetry standards.
type Standard int

const (
	// JPEG is full-range ITU-T T.871 (Y, Cb, Cr all in [0:255]).
	JPEG Standard = iota
	// BT601 is ITU-R BT.601-7 limited range (Y [16:235], CbCr [16:240]).
	BT601
	// BT709 is ITU-R BT.709-6 limited range.
	BT709

	// NumStandards is the number of supported standards.
	NumStandards
)

// ForwardParams holds the fixed-point coefficients for RGB -> YUV420.
// RFactor, GFactor, BFactor, CbFactor and CrFactor carry 8 fractional bits,
// YFactor carries 7. YOffset is the digital luma minimum.
type ForwardParams struct {
	RFactor  int32
	GFactor  int32
	BFactor  int32
	CbFactor int32
	CrFactor int32
	YFactor  int32
	YOffset  int32
}

// InverseParams holds the fixed-point coefficients for YUV420 -> RGB.
// CbFactor and CrFactor carry 6 fractional bits; GCbFactor, GCrFactor and
// YFactor carry 7.
type InverseParams struct {
	CbFactor  int32
	CrFactor  int32
	GCbFactor int32
	GCrFactor int32
	YFactor   int32
	YOffset   int32
}

// standardDef holds the analog constants a standard is defined by.
type standardDef struct {
	kr, kb        float64 // luma weights for red and blue (green is implied)
	yMin, yMax    float64 // digital luma range
	cbCrExcursion float64 // digital chroma excursion
}

var standardDefs = [NumStandards]standardDef{
	JPEG:  {kr: 0.299, kb: 0.114, yMin: 0, yMax: 255, cbCrExcursion: 255},
	BT601: {kr: 0.299, kb: 0.114, yMin: 16, yMax: 235, cbCrExcursion: 224},
	BT709: {kr: 0.2126, kb: 0.0722, yMin: 16, yMax: 235, cbCrExcursion: 224},
}

// fixedPoint rounds v half-up to the given number of fractional bits.
func fixedPoint(v float64, bits uint) int32 {
	return int32(v*float64(int32(1)<<bits) + 0.5)
}

// deriveForward computes the forward coefficient set for one standard.
// RFactor and BFactor are rounded independently; the rounding residual is
// folded entirely into GFactor so that RFactor+GFactor+BFactor == 256 and
// the luma mix can never exceed full range.
func deriveForward(d standardDef) ForwardParams {
	r := fixedPoint(d.kr, 8)
	b := fixedPoint(d.kb, 8)
	return ForwardParams{
		RFactor:  r,
		GFactor:  256 - r - b,
		BFactor:  b,
		CbFactor: fixedPoint((d.cbCrExcursion/255)/(2*(1-d.kb)), 8),
		CrFactor: fixedPoint((d.cbCrExcursion/255)/(2*(1-d.kr)), 8),
		YFactor:  fixedPoint((d.yMax-d.yMin)/255, 7),
		YOffset:  int32(d.yMin),
	}
}

// deriveInverse computes the inverse coefficient set for one standard.
func deriveInverse(d standardDef) InverseParams {
	kg := 1 - d.kr - d.kb
	return InverseParams{
		CbFactor:  fixedPoint(255*(2*(1-d.kb))/d.cbCrExcursion, 6),
		CrFactor:  fixedPoint(255*(2*(1-d.kr))/d.cbCrExcursion, 6),
		GCbFactor: fixedPoint(d.kb/kg*255*(2*(1-d.kb))/d.cbCrExcursion, 7),
		GCrFactor: fixedPoint(d.kr/kg*255*(2*(1-d.kr))/d.cbCrExcursion, 7),
		YFactor:   fixedPoint(255/(d.yMax-d.yMin), 7),
		YOffset:   int32(d.yMin),
	}
}

// Per-standard coefficient tables. Filled once by initParamTables and
// read-only afterwards.
var (
	forwardTable [NumStandards]ForwardParams
	inverseTable [NumStandards]InverseParams
)

func initParamTables() {
	for i, d := range standardDefs {
		forwardTable[i] = deriveForward(d)
		inverseTable[i] = deriveInverse(d)
	}
}

// Forward returns the forward coefficient table entry for std.
// std must be a valid Standard; the caller validates.
func Forward(std Standard) *ForwardParams {
	return &forwardTable[std]
}

// Inverse returns the inverse coefficient table entry for std.
func Inverse(std Standard) *InverseParams {
	return &inverseTable[std]
}

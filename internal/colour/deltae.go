// Package colour provides the CIEDE2000 colour difference metric.
package colour

import "math"

// DeltaE2000 computes the CIEDE2000 colour difference between two CIELAB
// colours with the parametric factors kL = kC = kH = 1. The result is
// symmetric and zero iff the inputs are equal. Lower values mean more
// similar colours; a value around 2.3 is a just-noticeable difference.
//
// Implements the formulation from Sharma, Wu & Dalal (2005), including the
// G chroma compensation, the rotation term RT, and the SL/SC/SH weights.
func DeltaE2000(lab1, lab2 Lab) float64 {
	const pow25to7 = 6103515625.0 // 25^7

	c1 := math.Hypot(lab1.A, lab1.B)
	c2 := math.Hypot(lab2.A, lab2.B)
	cBar := (c1 + c2) / 2

	cBar7 := math.Pow(cBar, 7)
	g := 0.5 * (1 - math.Sqrt(cBar7/(cBar7+pow25to7)))

	a1p := (1 + g) * lab1.A
	a2p := (1 + g) * lab2.A
	c1p := math.Hypot(a1p, lab1.B)
	c2p := math.Hypot(a2p, lab2.B)

	h1p := hueAngle(lab1.B, a1p)
	h2p := hueAngle(lab2.B, a2p)

	dLp := lab2.L - lab1.L
	dCp := c2p - c1p

	// Hue difference, shortest way around the wheel.
	var dhp float64
	switch {
	case c1p*c2p == 0:
		dhp = 0
	case math.Abs(h2p-h1p) <= 180:
		dhp = h2p - h1p
	case h2p-h1p > 180:
		dhp = h2p - h1p - 360
	default:
		dhp = h2p - h1p + 360
	}
	dHp := 2 * math.Sqrt(c1p*c2p) * math.Sin(radians(dhp)/2)

	lBarP := (lab1.L + lab2.L) / 2
	cBarP := (c1p + c2p) / 2

	// Mean hue.
	var hBarP float64
	switch {
	case c1p*c2p == 0:
		hBarP = h1p + h2p
	case math.Abs(h1p-h2p) <= 180:
		hBarP = (h1p + h2p) / 2
	case h1p+h2p < 360:
		hBarP = (h1p + h2p + 360) / 2
	default:
		hBarP = (h1p + h2p - 360) / 2
	}

	t := 1 -
		0.17*math.Cos(radians(hBarP-30)) +
		0.24*math.Cos(radians(2*hBarP)) +
		0.32*math.Cos(radians(3*hBarP+6)) -
		0.20*math.Cos(radians(4*hBarP-63))

	dTheta := 30 * math.Exp(-math.Pow((hBarP-275)/25, 2))

	cBarP7 := math.Pow(cBarP, 7)
	rc := 2 * math.Sqrt(cBarP7/(cBarP7+pow25to7))
	rt := -math.Sin(radians(2*dTheta)) * rc

	lDev := lBarP - 50
	sl := 1 + 0.015*lDev*lDev/math.Sqrt(20+lDev*lDev)
	sc := 1 + 0.045*cBarP
	sh := 1 + 0.015*cBarP*t

	return math.Sqrt(
		math.Pow(dLp/sl, 2) +
			math.Pow(dCp/sc, 2) +
			math.Pow(dHp/sh, 2) +
			rt*(dCp/sc)*(dHp/sh),
	)
}

// hueAngle returns the hue angle of (a, b) in degrees within [0, 360).
// Zero when both components are zero (achromatic).
func hueAngle(b, a float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

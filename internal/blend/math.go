package blend

// Per-pixel compositing runs mulDiv255 several times for every pixel of
// every blended tile, so it avoids a real integer division: (x + 255) >> 8
// is within +1 of x/255 over the 0..65025 range alpha math produces, which
// is imperceptible in 8-bit channels.

// div255 approximates x/255 for x in [0, 255*255].
func div255(x uint16) uint16 {
	return (x + 255) >> 8
}

// mulDiv255 returns a*b/255, the premultiplied-channel scaling primitive.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// addClamp adds two bytes, saturating at 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// subClamp subtracts b from a, saturating at 0.
func subClamp(a, b byte) byte {
	if b >= a {
		return 0
	}
	return a - b
}

func minByte(a, b byte) byte {
	if a < b {
		return a
	}
	return b
}

func maxByte(a, b byte) byte {
	if a > b {
		return a
	}
	return b
}

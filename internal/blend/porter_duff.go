package blend

// source, sourceOver, destinationOver, destinationOut and plusClamped are the
// Porter-Duff kernels canvasd's Mode enum is built on (REPLACE, NORMAL, BEHIND,
// ERASE, ADD respectively). All operate on premultiplied alpha, 0-255.

// separableKernel is the signature for a per-pixel composite operating on
// premultiplied color. sr/sg/sb/sa is the incoming (source) pixel, dr/dg/db/da
// the existing (destination) pixel.
type separableKernel func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// source replaces the destination outright. Backs Mode REPLACE.
func source(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

// sourceOver composites source over destination: S + D*(1-Sa). Backs Mode
// NORMAL, the default compositing operator.
func sourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

// destinationOver composites destination over source: S*(1-Da) + D. Backs
// Mode BEHIND, which paints only into the transparent parts of the
// destination rather than on top of it.
func destinationOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return addClamp(mulDiv255(sr, invDa), dr),
		addClamp(mulDiv255(sg, invDa), dg),
		addClamp(mulDiv255(sb, invDa), db),
		addClamp(mulDiv255(sa, invDa), da)
}

// destinationOut removes destination wherever source is opaque: D*(1-Sa).
// Backs Mode ERASE.
func destinationOut(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
}

// plusClamped adds source and destination, clamping each channel to 255.
// Backs Mode ADD.
func plusClamped(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addClamp(sr, dr), addClamp(sg, dg), addClamp(sb, db), addClamp(sa, da)
}

// subtractClamped subtracts source from destination, clamping each channel
// at 0. Backs Mode SUBTRACT. No separable formula in the W3C compositing
// spec covers subtraction, so this follows the same clamped-arithmetic
// shape as plusClamped (its natural inverse).
func subtractClamped(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return subClamp(dr, sr), subClamp(dg, sg), subClamp(db, sb), subClamp(da, sa)
}

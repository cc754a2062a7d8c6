// This file implements the separable W3C blend modes canvasd's Mode enum
// needs beyond straight Porter-Duff compositing: MULTIPLY, SCREEN, OVERLAY,
// DARKEN, LIGHTEN, DODGE and BURN.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// separableBlend applies a per-channel blend function B(Cs, Cb) operating on
// unmultiplied channels, then recomposites with the standard formula:
//
//	Result = (1-Sa)*D + (1-Da)*S + Sa*Da*B(Sc, Dc)
//
// All arguments and results are premultiplied alpha, 0-255.
func separableBlend(sr, sg, sb, sa, dr, dg, db, da byte, blendChan func(s, d byte) byte) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	var sur, sug, sub, dur, dug, dub byte
	sur = byte((uint16(sr) * 255) / uint16(sa))
	sug = byte((uint16(sg) * 255) / uint16(sa))
	sub = byte((uint16(sb) * 255) / uint16(sa))
	dur = byte((uint16(dr) * 255) / uint16(da))
	dug = byte((uint16(dg) * 255) / uint16(da))
	dub = byte((uint16(db) * 255) / uint16(da))

	blendR := blendChan(sur, dur)
	blendG := blendChan(sug, dug)
	blendB := blendChan(sub, dub)

	invSa := 255 - sa
	invDa := 255 - da
	finalA := addClamp(sa, mulDiv255(da, invSa))

	finalR := addClamp(mulDiv255(dr, invSa), mulDiv255(sr, invDa))
	finalG := addClamp(mulDiv255(dg, invSa), mulDiv255(sg, invDa))
	finalB := addClamp(mulDiv255(db, invSa), mulDiv255(sb, invDa))

	saDa := mulDiv255(sa, da)
	finalR = addClamp(finalR, mulDiv255(saDa, blendR))
	finalG = addClamp(finalG, mulDiv255(saDa, blendG))
	finalB = addClamp(finalB, mulDiv255(saDa, blendB))

	return finalR, finalG, finalB, finalA
}

// multiply darkens: B(Cb,Cs) = Cb*Cs.
func multiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, mulDiv255)
}

// screen lightens: B(Cb,Cs) = 1 - (1-Cb)*(1-Cs).
func screen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return 255 - mulDiv255(255-s, 255-d)
	})
}

// overlay is hardLight with source and destination swapped:
// B(Cb,Cs) = if Cb<=0.5: 2*Cb*Cs, else: 1 - 2*(1-Cb)*(1-Cs).
func overlay(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if d < 128 {
			return mulDiv255(2*d, s)
		}
		return 255 - mulDiv255(2*(255-d), 255-s)
	})
}

// darken selects the darker channel: B(Cb,Cs) = min(Cb,Cs).
func darken(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, minByte)
}

// lighten selects the lighter channel: B(Cb,Cs) = max(Cb,Cs).
func lighten(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, maxByte)
}

// colorDodge brightens the destination to reflect the source:
// B(Cb,Cs) = 1 if Cs==1, else min(1, Cb/(1-Cs)).
func colorDodge(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s == 255 {
			return 255
		}
		result := (uint16(d) * 255) / uint16(255-s)
		if result > 255 {
			return 255
		}
		return byte(result)
	})
}

// colorBurn darkens the destination to reflect the source:
// B(Cb,Cs) = 0 if Cs==0, else 1 - min(1, (1-Cb)/Cs).
func colorBurn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s == 0 {
			return 0
		}
		result := (uint16(255-d) * 255) / uint16(s)
		if result > 255 {
			return 0
		}
		return 255 - byte(result)
	})
}

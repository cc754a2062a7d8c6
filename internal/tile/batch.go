package tile

// Normal-mode compositing is the hot path of layer merge and pen-up flush,
// so blendNormalBatch widens pixels into fixed 16-element uint16 lanes and
// runs plain loops over them — a shape the compiler auto-vectorizes on
// amd64 and arm64 without unsafe or per-platform assembly. A tile is
// exactly Pixels/batchLanes batches, so there is no scalar remainder.

const batchLanes = 16

// batchLane is one channel of batchLanes pixels widened to uint16 so the
// blend arithmetic cannot overflow mid-expression.
type batchLane [batchLanes]uint16

// scaleDiv255 multiplies every element by s and divides by 255 in place.
// (x+255)>>8 is within +1 of exact x/255 over the range alpha math
// produces, invisible in 8-bit channels.
func (l *batchLane) scaleDiv255(s uint16) {
	for i := range l {
		l[i] = (l[i]*s + 255) >> 8
	}
}

// mulDiv255 multiplies element-wise by m and divides by 255 in place.
func (l *batchLane) mulDiv255(m *batchLane) {
	for i := range l {
		l[i] = (l[i]*m[i] + 255) >> 8
	}
}

// addSat adds o element-wise, saturating at 255.
func (l *batchLane) addSat(o *batchLane) {
	for i := range l {
		v := l[i] + o[i]
		if v > 255 {
			v = 255
		}
		l[i] = v
	}
}

// blendNormalBatch composites src over dst with a uniform opacity using the
// premultiplied source-over formula, batchLanes pixels at a time:
//
//	out = src*opacity/255 + dst*(255 - srcA*opacity/255)/255
//
// dst must be transient. Callers have already handled opacity == 0 and a
// nil src.
func blendNormalBatch(dst, src *Tile, opacity byte) {
	op := uint16(opacity)
	for base := 0; base < Pixels; base += batchLanes {
		var sb, sg, sr, sa, db, dg, dr, da, inv batchLane
		for i := 0; i < batchLanes; i++ {
			s := src.Data[base+i]
			sb[i], sg[i], sr[i], sa[i] = uint16(s.B), uint16(s.G), uint16(s.R), uint16(s.A)
			d := dst.Data[base+i]
			db[i], dg[i], dr[i], da[i] = uint16(d.B), uint16(d.G), uint16(d.R), uint16(d.A)
		}

		if opacity != 255 {
			sb.scaleDiv255(op)
			sg.scaleDiv255(op)
			sr.scaleDiv255(op)
			sa.scaleDiv255(op)
		}

		for i := range inv {
			inv[i] = 255 - sa[i]
		}
		db.mulDiv255(&inv)
		dg.mulDiv255(&inv)
		dr.mulDiv255(&inv)
		da.mulDiv255(&inv)
		db.addSat(&sb)
		dg.addSat(&sg)
		dr.addSat(&sr)
		da.addSat(&sa)

		for i := 0; i < batchLanes; i++ {
			dst.Data[base+i] = Pixel{B: byte(db[i]), G: byte(dg[i]), R: byte(dr[i]), A: byte(da[i])}
		}
	}
}

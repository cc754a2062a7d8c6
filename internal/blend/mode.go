package blend

import "fmt"

// Mode is the wire-level blend mode a drawing command names. It is
// intentionally distinct from the unexported per-pixel kernels: Mode
// is what PUT_IMAGE, FILL_RECT, DRAW_DABS_* and layer merge/props carry
// across the wire, and is validated before any pixel work happens.
type Mode uint8

const (
	Normal Mode = iota
	Behind
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	Dodge
	Burn
	Add
	Subtract
	Erase
	Replace

	modeCount
)

// ParseMode validates a numeric wire code and returns the corresponding
// Mode. Unknown codes are the one place unknown-mode command failures
// originate; every handler that accepts a mode byte must go through this.
func ParseMode(code uint8) (Mode, error) {
	if code >= uint8(modeCount) {
		return 0, fmt.Errorf("%w: blend mode code %d", ErrUnknownMode, code)
	}
	return Mode(code), nil
}

// kernels maps each Mode to its per-pixel compositing kernel.
var kernels = [modeCount]separableKernel{
	Normal:   sourceOver,
	Behind:   destinationOver,
	Multiply: multiply,
	Screen:   screen,
	Overlay:  overlay,
	Darken:   darken,
	Lighten:  lighten,
	Dodge:    colorDodge,
	Burn:     colorBurn,
	Add:      plusClamped,
	Subtract: subtractClamped,
	Erase:    destinationOut,
	Replace:  source,
}

// Kernel returns the per-pixel compositing function for mode. Callers must
// only pass modes returned by ParseMode or one of the named constants.
func Kernel(mode Mode) func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte) {
	return kernels[mode]
}

// ValidForBrush reports whether mode may be used for a brush stroke
// (FILL_RECT, DRAW_DABS_*) as opposed to only a structural layer-merge
// operation. BEHIND composites only into already-transparent destination
// pixels and REPLACE discards destination alpha outright; both make sense
// for compositing a whole layer but not for a single dab or fill, so they
// are excluded. Every other named mode is valid for both uses.
func ValidForBrush(mode Mode) bool {
	switch mode {
	case Behind, Replace:
		return false
	default:
		return mode < modeCount
	}
}

// NoopOnNullSource reports whether compositing a fully-null (all-zero)
// source tile under mode is guaranteed to leave the destination unchanged.
// This holds for every mode except REPLACE, which discards the destination
// outright regardless of the source's own content — a null REPLACE source
// still clears the destination to transparent. Layer merge uses this to
// skip entire tiles where the source reference is nil.
func NoopOnNullSource(mode Mode) bool {
	return mode != Replace
}

// Composite blends src (premultiplied, 0-255 per channel) over dst using
// mode, scaled by opacity (0-255, applied to the source alpha channel
// before compositing).
func Composite(mode Mode, sr, sg, sb, sa, dr, dg, db, da byte, opacity byte) (r, g, b, a byte) {
	if opacity != 255 {
		sr = mulDiv255(sr, opacity)
		sg = mulDiv255(sg, opacity)
		sb = mulDiv255(sb, opacity)
		sa = mulDiv255(sa, opacity)
	}
	return kernels[mode](sr, sg, sb, sa, dr, dg, db, da)
}

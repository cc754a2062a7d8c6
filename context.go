package canvasd

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/inkmural/canvasd/internal/imgbuf"
	"github.com/inkmural/canvasd/internal/xform"
)

// defaultPayloadCacheSize bounds how many decompressed image payloads (and,
// separately, REGION_MOVE masks) a DrawContext keeps around between handle()
// calls; PUT_TILE payloads are not cached. The same PUT_IMAGE payload
// sometimes arrives again unchanged (an undo/redo replay,
// or a client resending after a dropped ack), so caching the inflated
// result avoids paying zlib decode twice.
const defaultPayloadCacheSize = 64

// DrawContext holds the scratch buffers and decode cache a single Handle
// call needs, so repeated calls can reuse them instead of reallocating. It
// is exclusively owned by the goroutine performing a Handle call; the
// caller passes it in so it survives across calls.
type DrawContext struct {
	scratch   *xform.Scratch
	cache     *lru.Cache[string, *imgbuf.Buffer]
	maskCache *lru.Cache[string, []byte]
}

// DrawContextOption configures a DrawContext during construction.
type DrawContextOption func(*drawContextOptions)

type drawContextOptions struct {
	payloadCacheSize int
}

func defaultDrawContextOptions() drawContextOptions {
	return drawContextOptions{payloadCacheSize: defaultPayloadCacheSize}
}

// WithPayloadCacheSize overrides the number of decompressed payloads a
// DrawContext remembers. A size of 0 disables the cache.
func WithPayloadCacheSize(n int) DrawContextOption {
	return func(o *drawContextOptions) {
		o.payloadCacheSize = n
	}
}

// NewDrawContext returns a DrawContext ready for repeated Handle calls.
func NewDrawContext(opts ...DrawContextOption) *DrawContext {
	o := defaultDrawContextOptions()
	for _, opt := range opts {
		opt(&o)
	}

	dc := &DrawContext{scratch: xform.NewScratch()}
	if o.payloadCacheSize > 0 {
		if c, err := lru.New[string, *imgbuf.Buffer](o.payloadCacheSize); err == nil {
			dc.cache = c
		}
		if c, err := lru.New[string, []byte](o.payloadCacheSize); err == nil {
			dc.maskCache = c
		}
	}
	return dc
}

// cachedPayload returns a previously decoded image buffer for key, if any
// is still cached.
func (dc *DrawContext) cachedPayload(key string) (*imgbuf.Buffer, bool) {
	if dc.cache == nil {
		return nil, false
	}
	return dc.cache.Get(key)
}

// storePayload remembers buf under key for future cachedPayload lookups.
func (dc *DrawContext) storePayload(key string, buf *imgbuf.Buffer) {
	if dc.cache == nil {
		return
	}
	dc.cache.Add(key, buf)
}

// cachedMask returns a previously decoded coverage mask for key, if any is
// still cached.
func (dc *DrawContext) cachedMask(key string) ([]byte, bool) {
	if dc.maskCache == nil {
		return nil, false
	}
	return dc.maskCache.Get(key)
}

// storeMask remembers mask under key for future cachedMask lookups.
func (dc *DrawContext) storeMask(key string, mask []byte) {
	if dc.maskCache == nil {
		return
	}
	dc.maskCache.Add(key, mask)
}

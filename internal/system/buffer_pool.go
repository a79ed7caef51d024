package system

import "sync"

// FramePool reuses raw RGBA frame slices between video decodes to reduce
// GC pressure. Slices are pooled per exact size since frame dimensions are
// constant within one asset.
type FramePool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex
}

var globalFramePool = &FramePool{
	pools: make(map[int]*sync.Pool),
}

// GetFrame returns a frame slice of exactly size bytes.
func GetFrame(size int) []uint8 {
	return globalFramePool.Get(size)
}

// PutFrame returns a frame slice to the pool for reuse.
func PutFrame(buf []uint8) {
	globalFramePool.Put(buf)
}

func (p *FramePool) Get(size int) []uint8 {
	p.mu.RLock()
	pool, exists := p.pools[size]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[size]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return make([]uint8, size)
				},
			}
			p.pools[size] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().([]uint8)
}

func (p *FramePool) Put(buf []uint8) {
	if buf == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[len(buf)]
	p.mu.RUnlock()

	if exists {
		pool.Put(buf)
	}
}

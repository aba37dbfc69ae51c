package particle

import "sync"

// VecPool recycles per-step scratch buffers.
type VecPool struct {
	pool sync.Pool
}

func NewVecPool() *VecPool {
	return &VecPool{
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]Vec3, 0, 1024)
				return &s
			},
		},
	}
}

// Get returns a zeroed buffer of length n.
func (p *VecPool) Get(n int) []Vec3 {
	sp := p.pool.Get().(*[]Vec3)
	s := *sp
	if cap(s) < n {
		s = make([]Vec3, n)
	} else {
		s = s[:n]
		for i := range s {
			s[i] = Vec3{}
		}
	}
	return s
}

func (p *VecPool) Put(s []Vec3) {
	s = s[:0]
	p.pool.Put(&s)
}

// File: reactor/pool.go
// License: Apache-2.0
//
// Fixed-size loop pool with atomic round-robin selection.

package reactor

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/mouri80/mina/api"
)

// FixedLoopPool distributes sessions over a fixed set of selector loops.
type FixedLoopPool struct {
	loops []api.Loop
	next  atomic.Uint32
}

var _ api.LoopPool = (*FixedLoopPool)(nil)

// NewFixedLoopPool creates and starts n loops named namePrefix-0..n-1.
// n <= 0 selects the default of NumCPU+1 loops.
func NewFixedLoopPool(n int, namePrefix string) (*FixedLoopPool, error) {
	if n <= 0 {
		n = runtime.NumCPU() + 1
	}
	loops := make([]api.Loop, 0, n)
	for i := 0; i < n; i++ {
		l, err := NewLoop(fmt.Sprintf("%s-%d", namePrefix, i))
		if err != nil {
			for _, open := range loops {
				open.Close()
			}
			return nil, err
		}
		loops = append(loops, l)
	}
	return &FixedLoopPool{loops: loops}, nil
}

// Get returns the next loop in round-robin order. Safe for concurrent use.
func (p *FixedLoopPool) Get() api.Loop {
	i := p.next.Add(1) - 1
	return p.loops[i%uint32(len(p.loops))]
}

// Size returns the number of loops in the pool.
func (p *FixedLoopPool) Size() int {
	return len(p.loops)
}

// Close stops every loop, returning the first error encountered.
func (p *FixedLoopPool) Close() error {
	var first error
	for _, l := range p.loops {
		if err := l.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

package camera

import (
	"context"
	"sync"
)

// Synthetic - программная камера без оборудования.
// Считает живые потоки и может имитировать отказ.
type Synthetic struct {
	mu       sync.Mutex
	err      error
	live     int
	acquired int
	last     Constraints
}

func NewSynthetic() *Synthetic {
	return &Synthetic{}
}

// Fail задает ошибку для последующих Acquire; nil снимает отказ
func (c *Synthetic) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *Synthetic) Acquire(ctx context.Context, cons Constraints) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}
	c.live++
	c.acquired++
	c.last = cons
	return &syntheticStream{owner: c}, nil
}

// Live - количество неостановленных потоков
func (c *Synthetic) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

// Acquired - сколько раз поток был выдан
func (c *Synthetic) Acquired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acquired
}

// LastConstraints - параметры последнего успешного запроса
func (c *Synthetic) LastConstraints() Constraints {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

type syntheticStream struct {
	owner *Synthetic
	once  sync.Once
}

func (s *syntheticStream) Stop() {
	s.once.Do(func() {
		s.owner.mu.Lock()
		s.owner.live--
		s.owner.mu.Unlock()
	})
}

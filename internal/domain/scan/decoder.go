package scan

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	DefaultLatency     = 2 * time.Second
	DefaultFailureRate = 0.2
)

// Decoder - асинхронное распознавание кадра
type Decoder interface {
	Decode(ctx context.Context) (Result, error)
}

// SimulatedDecoder имитирует распознавание: фиксированная задержка
// и случайный отказ с вероятностью FailureRate
type SimulatedDecoder struct {
	latency     time.Duration
	failureRate float64
	rand        func() float64
	now         func() time.Time
	ids         *AccountIDs
}

func NewSimulatedDecoder(latency time.Duration, failureRate float64) *SimulatedDecoder {
	return &SimulatedDecoder{
		latency:     latency,
		failureRate: failureRate,
		rand:        rand.Float64,
		now:         time.Now,
		ids:         &processIDs,
	}
}

// WithRand подменяет источник случайности
func (d *SimulatedDecoder) WithRand(f func() float64) *SimulatedDecoder {
	d.rand = f
	return d
}

// WithClock подменяет часы
func (d *SimulatedDecoder) WithClock(now func() time.Time) *SimulatedDecoder {
	d.now = now
	return d
}

func (d *SimulatedDecoder) Decode(ctx context.Context) (Result, error) {
	if d.latency > 0 {
		timer := time.NewTimer(d.latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if d.rand() < d.failureRate {
		return Result{}, ErrRecognitionFailure
	}

	now := d.now()
	return Result{
		Name:      "John Doe",
		Email:     "john.doe@example.com",
		AccountID: d.ids.Next(now),
		Timestamp: now.UTC().Format(TimestampLayout),
	}, nil
}

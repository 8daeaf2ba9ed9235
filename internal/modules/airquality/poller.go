package airquality

import (
	"context"
	"log"
	"time"

	"vrisa/internal/domain"
)

type aqiAPI interface {
	CurrentAQI(ctx context.Context, token string, stationID *int64) ([]domain.AQISnapshot, error)
}

type broadcaster interface {
	Broadcast(event *Event)
}

// Poller refreshes the network-wide AQI on a fixed interval and pushes the
// result to the hub. The AQI endpoint is public, so no token is attached.
type Poller struct {
	api      aqiAPI
	hub      broadcaster
	interval time.Duration
}

func NewPoller(api aqiAPI, hub broadcaster, interval time.Duration) *Poller {
	return &Poller{api: api, hub: hub, interval: interval}
}

// Run blocks until ctx is cancelled. A failed fetch is logged and the loop
// keeps its cadence; the next tick retries.
func (p *Poller) Run(ctx context.Context) {
	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	snaps, err := p.api.CurrentAQI(ctx, "", nil)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("aqi poll failed: %v", err)
		}
		return
	}
	p.hub.Broadcast(&Event{
		Type:      EventAQIUpdate,
		Snapshots: snaps,
		At:        time.Now(),
	})
}

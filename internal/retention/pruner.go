// Package retention prunes the load history in the background.
package retention

import (
	"context"
	"log"
	"sync"
	"time"
)

// Store is the part of the load history the pruner needs
type Store interface {
	CleanupOldLoads(retention time.Duration) error
}

type Pruner struct {
	store     Store
	retention time.Duration
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.RWMutex
	lastRun   time.Time
	running   bool
}

// New creates a pruner removing entries older than retention every interval
func New(store Store, retention, interval time.Duration) *Pruner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pruner{
		store:     store,
		retention: retention,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (p *Pruner) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	log.Printf("Pruning load history older than %v every %v", p.retention, p.interval)

	p.wg.Add(1)
	go p.pruneLoop()
}

func (p *Pruner) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}

func (p *Pruner) pruneLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Prune immediately on start
	p.Prune()

	for {
		select {
		case <-ticker.C:
			p.Prune()
		case <-p.ctx.Done():
			return
		}
	}
}

// Prune runs one cleanup pass
func (p *Pruner) Prune() {
	if err := p.store.CleanupOldLoads(p.retention); err != nil {
		log.Printf("Warning: failed to prune load history: %v", err)
		return
	}

	p.mu.Lock()
	p.lastRun = time.Now()
	p.mu.Unlock()
}

// LastRun returns when the last successful pass finished
func (p *Pruner) LastRun() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastRun
}

func (p *Pruner) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

package config

import (
	"context"

	"chatapp/internal/logger"
)

// Persister writes snapshots to disk off the UI goroutine. Only the newest
// pending snapshot is kept; intermediate ones are superseded.
type Persister struct {
	path    string
	pending chan *AppConfig
	save    func(string, *AppConfig) error
	logger  logger.Logger
}

func NewPersister(path string, log logger.Logger) *Persister {
	return &Persister{
		path:    path,
		pending: make(chan *AppConfig, 1),
		save:    Save,
		logger:  log,
	}
}

// Submit queues cfg for writing and returns immediately.
func (p *Persister) Submit(cfg *AppConfig) {
	for {
		select {
		case p.pending <- cfg:
			return
		default:
		}
		// Slot taken: drop the stale snapshot and retry.
		select {
		case <-p.pending:
		default:
		}
	}
}

// Run drains submissions until ctx is done, then flushes what is left.
func (p *Persister) Run(ctx context.Context) error {
	for {
		select {
		case cfg := <-p.pending:
			p.write(cfg)
		case <-ctx.Done():
			select {
			case cfg := <-p.pending:
				p.write(cfg)
			default:
			}
			return nil
		}
	}
}

func (p *Persister) write(cfg *AppConfig) {
	if err := p.save(p.path, cfg); err != nil {
		p.logger.Error("ConfigPersister", err, map[string]interface{}{
			"path": p.path,
		})
		return
	}
	p.logger.Debug("ConfigPersister", "config written", map[string]interface{}{
		"path": p.path,
	})
}

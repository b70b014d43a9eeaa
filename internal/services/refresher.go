package services

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Refresher mantiene la caché de resúmenes actualizada en segundo plano
type Refresher struct {
	interval    time.Duration
	timeout     time.Duration
	service     *SummaryService
	logger      *slog.Logger
	isRunning   bool
	cancel      context.CancelFunc
	done        chan struct{}
	mutex       sync.Mutex
	lastUpdated time.Time
}

// NewRefresher crea el actualizador. timeout limita cada consulta a Quidax.
func NewRefresher(service *SummaryService, interval, timeout time.Duration, logger *slog.Logger) *Refresher {
	if timeout <= 0 {
		timeout = interval
	}
	return &Refresher{
		interval: interval,
		timeout:  timeout,
		service:  service,
		logger:   logger,
	}
}

// Start inicia el ciclo de actualización. Llamarlo dos veces no tiene efecto.
func (r *Refresher) Start() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.isRunning {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.isRunning = true
	r.cancel = cancel
	r.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		// Actualizar inmediatamente al iniciar
		r.refresh(ctx)

		for {
			select {
			case <-ticker.C:
				r.refresh(ctx)
			case <-ctx.Done():
				return
			}
		}
	}(r.done)

	r.logger.Info("actualizador de resúmenes iniciado", "interval", r.interval)
}

// Stop detiene el ciclo y espera a que termine la actualización en curso
func (r *Refresher) Stop() {
	r.mutex.Lock()
	if !r.isRunning {
		r.mutex.Unlock()
		return
	}
	r.isRunning = false
	r.cancel()
	done := r.done
	r.mutex.Unlock()

	<-done
	r.logger.Info("actualizador de resúmenes detenido")
}

// GetLastUpdated devuelve la última vez que la actualización terminó bien
func (r *Refresher) GetLastUpdated() time.Time {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.lastUpdated
}

func (r *Refresher) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	summaries, err := r.service.Refresh(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Error("error actualizando resúmenes", "error", err)
		}
		return
	}

	r.mutex.Lock()
	r.lastUpdated = time.Now()
	r.mutex.Unlock()

	r.logger.Debug("resúmenes actualizados", "markets", len(summaries))
}

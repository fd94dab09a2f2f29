// Package events publica los eventos de dominio hacia el feed de actividad.
// La implementación actual los emite como log estructurado; el contrato
// fire-and-forget permite cambiar el destino (broker, webhook) sin tocar
// los workflows.
package events

import (
	"github.com/jhoicas/Taller-api/internal/application/event"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

var _ event.Publisher = (*LogPublisher)(nil)

// LogPublisher encola los eventos en un buffer y los emite desde una goroutine
// propia: Publish nunca bloquea al workflow que acaba de hacer Commit. Si el
// buffer se llena el evento se descarta; el feed es informativo, no un ledger.
type LogPublisher struct {
	log *logger.Logger
	ch  chan event.Event
}

// NewLogPublisher construye el publicador y arranca su goroutine de drenaje.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	p := &LogPublisher{
		log: log,
		ch:  make(chan event.Event, 256),
	}
	go p.drain()
	return p
}

// Publish encola el evento sin bloquear.
func (p *LogPublisher) Publish(e event.Event) {
	select {
	case p.ch <- e:
	default:
		p.log.Warn().Str("event", e.Name).Msg("feed de actividad saturado, evento descartado")
	}
}

func (p *LogPublisher) drain() {
	for e := range p.ch {
		p.log.Info().
			Str("event", e.Name).
			Str("actor", e.Actor).
			Time("at", e.At).
			Interface("payload", e.Payload).
			Msg("evento de dominio")
	}
}

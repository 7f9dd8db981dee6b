// Package stream implementa el fan-out en memoria de eventos de cambio
// hacia los suscriptores websocket, particionado por tenant y colección.
package stream

import (
	"sync"

	"github.com/devstock/ledger-api/internal/domain/event"
)

var _ event.Publisher = (*Hub)(nil)

// subscriberBuffer tamaño del canal por suscriptor. Si el consumidor no
// drena a tiempo se descartan eventos: el contrato es resuscribirse y
// tomar snapshot fresco, no entrega garantizada.
const subscriberBuffer = 16

type subscriptionKey struct {
	tenantID string
	kind     event.Kind
}

// Hub distribuye eventos confirmados a los suscriptores del mismo tenant
// y kind. Publish nunca bloquea.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[subscriptionKey]map[int]chan event.Event
}

// NewHub construye un hub vacío.
func NewHub() *Hub {
	return &Hub{subs: make(map[subscriptionKey]map[int]chan event.Event)}
}

// Subscribe registra un consumidor para el tenant y kind dados. Devuelve el
// canal de eventos y la función de cancelación; cancelar cierra el canal.
func (h *Hub) Subscribe(tenantID string, kind event.Kind) (<-chan event.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := subscriptionKey{tenantID: tenantID, kind: kind}
	if h.subs[key] == nil {
		h.subs[key] = make(map[int]chan event.Event)
	}
	id := h.next
	h.next++
	ch := make(chan event.Event, subscriberBuffer)
	h.subs[key][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.subs[key]; ok {
			if sub, ok := set[id]; ok {
				delete(set, id)
				close(sub)
			}
			if len(set) == 0 {
				delete(h.subs, key)
			}
		}
	}
	return ch, cancel
}

// Publish entrega el evento a todos los suscriptores del tenant y kind.
// Si el buffer de un suscriptor está lleno, el evento se descarta para él.
func (h *Hub) Publish(ev event.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := subscriptionKey{tenantID: ev.TenantID, kind: ev.Kind}
	for _, ch := range h.subs[key] {
		select {
		case ch <- ev:
		default:
			// Suscriptor lento: se pierde el evento, resuscribir para snapshot.
		}
	}
}

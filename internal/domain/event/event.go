// Package event define los eventos de cambio que alimentan las
// suscripciones en vivo (dashboards y listados).
package event

import "time"

// Kind identifica la colección observada.
type Kind string

const (
	KindProducts Kind = "products"
	KindSales    Kind = "sales"
)

// ParseKind valida un kind recibido por la ruta de suscripción.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindProducts, KindSales:
		return Kind(s), true
	}
	return "", false
}

// Op tipo de cambio.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Event describe un cambio ya confirmado en el store, acotado a un tenant.
// Los consumidores no reciben garantía de orden respecto a la escritura:
// quien necesite un estado exacto debe resuscribirse y tomar snapshot fresco.
type Event struct {
	TenantID string    `json:"tenant_id"`
	Kind     Kind      `json:"kind"`
	Op       Op        `json:"op"`
	EntityID string    `json:"entity_id"`
	At       time.Time `json:"at"`
}

// Publisher es el puerto de publicación que usan los ledgers después de
// confirmar una escritura. Las implementaciones no deben bloquear.
type Publisher interface {
	Publish(ev Event)
}

package http

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/devstock/ledger-api/internal/application/dto"
	"github.com/devstock/ledger-api/internal/application/inventory"
	"github.com/devstock/ledger-api/internal/application/sales"
	"github.com/devstock/ledger-api/internal/domain/event"
	"github.com/devstock/ledger-api/internal/infrastructure/stream"
)

// streamMessage mensaje saliente por el websocket: primero un snapshot
// completo de la colección, después eventos de cambio. Ante eventos
// perdidos (buffer lleno) el cliente debe reconectar por snapshot fresco.
type streamMessage struct {
	Type  string       `json:"type"` // snapshot | event
	Kind  event.Kind   `json:"kind"`
	Data  any          `json:"data,omitempty"`
	Event *event.Event `json:"event,omitempty"`
}

// StreamHandler maneja las suscripciones websocket por tenant y colección.
type StreamHandler struct {
	hub         *stream.Hub
	inventoryUC *inventory.InventoryUseCase
	salesUC     *sales.SalesUseCase
}

// NewStreamHandler construye el handler de suscripciones.
func NewStreamHandler(hub *stream.Hub, inventoryUC *inventory.InventoryUseCase, salesUC *sales.SalesUseCase) *StreamHandler {
	return &StreamHandler{hub: hub, inventoryUC: inventoryUC, salesUC: salesUC}
}

// Upgrade valida el kind y que la petición sea un upgrade websocket.
// Corre después de AuthMiddleware: los Locals viajan a la conexión.
func (h *StreamHandler) Upgrade(c *fiber.Ctx) error {
	if _, ok := event.ParseKind(c.Params("kind")); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_KIND", Message: "kind debe ser products o sales"})
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// Serve atiende la conexión: snapshot inicial y luego eventos del hub
// hasta que el cliente se desconecte.
func (h *StreamHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		tenantID, _ := conn.Locals(LocalTenantID).(string)
		kind, ok := event.ParseKind(conn.Params("kind"))
		if tenantID == "" || !ok {
			_ = conn.Close()
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		snapshot, err := h.snapshot(ctx, tenantID, kind)
		if err != nil {
			_ = conn.Close()
			return
		}
		if err := conn.WriteJSON(streamMessage{Type: "snapshot", Kind: kind, Data: snapshot}); err != nil {
			return
		}

		events, unsubscribe := h.hub.Subscribe(tenantID, kind)
		defer unsubscribe()

		// Lector solo para detectar la desconexión del cliente.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, open := <-events:
				if !open {
					return
				}
				if err := conn.WriteJSON(streamMessage{Type: "event", Kind: kind, Event: &ev}); err != nil {
					return
				}
			}
		}
	})
}

func (h *StreamHandler) snapshot(ctx context.Context, tenantID string, kind event.Kind) (any, error) {
	switch kind {
	case event.KindProducts:
		return h.inventoryUC.ListProducts(ctx, tenantID, "")
	default:
		return h.salesUC.ListSales(ctx, tenantID, dto.PageRequest{})
	}
}

package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Legeek117/projet-stock/internal/infra"

	"github.com/rs/zerolog/log"
)

// StockAlertPayload is the job envelope sent to QueueStockAlert when a
// committed movement drops a product below the low-stock threshold.
type StockAlertPayload struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	NewStock    int    `json:"new_stock"`
	Threshold   int    `json:"threshold"`
}

// StockAlertWorker emails low-stock alerts to the configured recipient.
type StockAlertWorker struct {
	mailer *infra.Mailer
	to     string
}

func NewStockAlertWorker(mailer *infra.Mailer, to string) *StockAlertWorker {
	return &StockAlertWorker{mailer: mailer, to: to}
}

func (w *StockAlertWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload StockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return
	}
	if w.to == "" {
		log.Warn().Msg("alert_worker: no alert recipient configured, skipping")
		return
	}

	subject := fmt.Sprintf("Low stock: %s", payload.ProductName)
	body := fmt.Sprintf("Product %q (%s) is down to %d units (threshold %d). Consider restocking.",
		payload.ProductName, payload.ProductID, payload.NewStock, payload.Threshold)

	if err := w.mailer.Send(w.to, subject, body); err != nil {
		log.Error().Err(err).Str("product_id", payload.ProductID).Msg("alert_worker: failed to send email")
		return
	}
	log.Info().Str("product_id", payload.ProductID).Int("new_stock", payload.NewStock).Msg("alert_worker: low-stock alert sent")
}

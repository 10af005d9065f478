package analytics

import (
	"time"

	"github.com/sangkips/retail-api/internal/domain/entity"
)

type StockMovement struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	MinStockLevel int    `json:"minStockLevel"`
	TotalIn       int    `json:"totalIn"`
	TotalOut      int    `json:"totalOut"`
	NetMovement   int    `json:"netMovement"`
}

type movement struct {
	in, out int
}

// StockMovementReport returns one row per product, in input order, with the
// restocked and sold quantities dated on or after now minus days.
func StockMovementReport(transactions []entity.Transaction, products []entity.Product, days int, now time.Time) []StockMovement {
	cutoff := now.AddDate(0, 0, -days)

	moves := make(map[string]movement)
	for _, t := range transactions {
		if t.Date.Before(cutoff) {
			continue
		}
		m := moves[t.ProductID]
		switch {
		case t.IsRestock():
			m.in += t.Quantity
		case t.IsSale():
			m.out += t.Quantity
		}
		moves[t.ProductID] = m
	}

	rows := make([]StockMovement, 0, len(products))
	for _, p := range products {
		m := moves[p.ID]
		rows = append(rows, StockMovement{
			ID:            p.ID,
			Name:          p.Name,
			Quantity:      p.Quantity,
			MinStockLevel: p.MinStockLevel,
			TotalIn:       m.in,
			TotalOut:      m.out,
			NetMovement:   m.in - m.out,
		})
	}
	return rows
}

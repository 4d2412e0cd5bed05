package order

import (
	"github.com/agrimart-cloud/agrimart/internal/domain/order"
)

type lineDoc struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type orderDoc struct {
	ID             string    `json:"id"`
	FarmerID       string    `json:"farmerId"`
	FarmerName     string    `json:"farmerName,omitempty"`
	FarmerLocation string    `json:"farmerLocation,omitempty"`
	ShopID         string    `json:"shopId,omitempty"`
	ShopName       string    `json:"shopName,omitempty"`
	Lines          []lineDoc `json:"items"`
	Status         string    `json:"status"`
	Total          float64   `json:"totalAmount"`
	CreatedAt      int64     `json:"createdAt"`
}

func toDoc(o order.Order) orderDoc {
	lines := make([]lineDoc, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, lineDoc{
			ItemID:   l.ItemID(),
			Name:     l.Name(),
			Price:    l.Price(),
			Quantity: l.Quantity(),
		})
	}
	return orderDoc{
		ID:             o.ID(),
		FarmerID:       o.FarmerID(),
		FarmerName:     o.FarmerName(),
		FarmerLocation: o.FarmerLocation(),
		ShopID:         o.ShopID(),
		ShopName:       o.ShopName(),
		Lines:          lines,
		Status:         string(o.Status()),
		Total:          o.Total(),
		CreatedAt:      o.CreatedAt(),
	}
}

func fromDoc(d orderDoc) order.Order {
	lines := make([]order.Line, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, order.ReconstructLine(l.ItemID, l.Name, l.Price, l.Quantity))
	}
	return order.Reconstruct(
		d.ID, d.FarmerID, d.FarmerName, d.FarmerLocation, d.ShopID, d.ShopName,
		lines, order.Status(d.Status), d.Total, d.CreatedAt,
	)
}

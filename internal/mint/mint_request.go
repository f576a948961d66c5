package mint

import "github.com/pogi-collective/pogi-marketplace-backend/internal/shipping"

type MintRequest struct {
	BuyerAddress string                `json:"buyerAddress"`
	Name         string                `json:"name"`
	Country      string                `json:"country"`
	Lore         string                `json:"lore"`
	ImageCid     string                `json:"imageCid"`
	Attributes   map[string]string     `json:"attributes"`
	Items        []string              `json:"items"`
	ShippingInfo shipping.ShippingInfo `json:"shippingInfo"`
}

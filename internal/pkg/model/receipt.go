package model

// Receipt mirrors the soulbound receipt object the contract mints next to
// each character. The encrypted shipping blob is immutable once written;
// status and tracking fields are the only columns the event consumers update.
type Receipt struct {
	Id                    uint64      `gorm:"primaryKey" json:"id"`
	ReceiptId             string      `json:"receiptId"`
	NftId                 string      `json:"nftId"`
	BuyerAddress          string      `json:"buyerAddress"`
	ItemsSelected         string      `json:"itemsSelected"`
	EncryptedShippingInfo string      `json:"encryptedShippingInfo"`
	Status                OrderStatus `json:"status"`
	PaymentAmount         float64     `json:"paymentAmount"`
	TrackingNumber        *string     `json:"trackingNumber"`
	Carrier               *string     `json:"carrier"`
	EstimatedDelivery     *int64      `json:"estimatedDelivery"`
	CreatedAt             int64       `json:"createdAt"`
}

func (Receipt) TableName() string {
	return "receipt"
}

package model

type MintEvent struct {
	Id           uint64 `gorm:"primaryKey" json:"id"`
	NftId        string `json:"nftId"`
	BuyerAddress string `json:"buyerAddress"`
	MintedAt     int64  `json:"mintedAt"`
}

func (MintEvent) TableName() string {
	return "mint_event"
}

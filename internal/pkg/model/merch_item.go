package model

type MerchItem struct {
	Id     uint64  `gorm:"primaryKey" json:"id"`
	Tag    string  `json:"tag"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

func (MerchItem) TableName() string {
	return "merch_item"
}

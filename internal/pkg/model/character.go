package model

type Character struct {
	Id           uint64 `gorm:"primaryKey" json:"id"`
	NftId        string `json:"nftId"`
	OwnerAddress string `json:"ownerAddress"`
	Name         string `json:"name"`
	Country      string `json:"country"`
	Lore         string `json:"lore"`
	ImageCid     string `json:"imageCid"`
	Attributes   string `json:"attributes"`
	MintedAt     int64  `json:"mintedAt"`
}

func (Character) TableName() string {
	return "character"
}

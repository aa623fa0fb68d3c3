package model

type Retailer struct {
	BaseModel
	Name         string  `db:"name" json:"name"`
	ContactEmail *string `db:"contact_email" json:"contact_email"`
	ContactPhone *string `db:"contact_phone" json:"contact_phone"`
}

type RetailerLocation struct {
	BaseModel
	RetailerID      string  `db:"retailer_id" json:"retailer_id"`
	Name            string  `db:"name" json:"name"`
	LocationCity    *string `db:"location_city" json:"location_city"`
	LocationState   *string `db:"location_state" json:"location_state"`
	LocationCountry *string `db:"location_country" json:"location_country"`
}

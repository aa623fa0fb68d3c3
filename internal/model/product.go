package model

type VendorConfirmationStatus string

const (
	VendorConfirmationCandidate         VendorConfirmationStatus = "Candidate"
	VendorConfirmationConfirmedByVendor VendorConfirmationStatus = "ConfirmedByVendor"
	VendorConfirmationDeniedByVendor    VendorConfirmationStatus = "DeniedByVendor"
	VendorConfirmationDiscontinued      VendorConfirmationStatus = "Discontinued"
	VendorConfirmationUnknown           VendorConfirmationStatus = "Unknown"
)

type Product struct {
	BaseModel
	Name                        string                   `db:"name" json:"name"`
	VendorSKU                   *string                  `db:"vendor_sku" json:"vendor_sku"`
	VendorConfirmationStatus    VendorConfirmationStatus `db:"vendor_confirmation_status" json:"vendor_confirmation_status"`
	VendorID                    *string                  `db:"vendor_id" json:"vendor_id"`
	ReferringRetailerID         *string                  `db:"referring_retailer_id" json:"referring_retailer_id"`
	ReferringRetailerLocationID *string                  `db:"referring_retailer_location_id" json:"referring_retailer_location_id"`
	ConfirmedCoreProductID      *string                  `db:"confirmed_core_product_id" json:"confirmed_core_product_id"`
}

// ProductCreate is the draft passed to the manager. Referring retailer id is filled in on create.
type ProductCreate struct {
	Name                        string
	VendorSKU                   *string
	VendorConfirmationStatus    VendorConfirmationStatus
	VendorID                    *string
	ReferringRetailerLocationID *string
	ConfirmedCoreProductID      *string
}

package model

import "encoding/json"

type PosPlatform string

const (
	PosPlatformPosabit    PosPlatform = "Posabit"
	PosPlatformFlowhub    PosPlatform = "Flowhub"
	PosPlatformDutchie    PosPlatform = "Dutchie"
	PosPlatformKlickTrack PosPlatform = "KlickTrack"
	PosPlatformCova       PosPlatform = "Cova"
	PosPlatformMeadow     PosPlatform = "Meadow"
	PosPlatformGrowFlow   PosPlatform = "GrowFlow"
	PosPlatformUnknown    PosPlatform = "Unknown"
)

type PosIntegration struct {
	BaseModel
	RetailerID         string      `db:"retailer_id" json:"retailer_id"`
	RetailerLocationID string      `db:"retailer_location_id" json:"retailer_location_id"`
	Name               string      `db:"name" json:"name"`
	URL                string      `db:"url" json:"url"`
	Key                string      `db:"key" json:"-"`
	PosPlatform        PosPlatform `db:"pos_platform" json:"pos_platform"`
	Description        *string     `db:"description" json:"description"`

	Retailer         *Retailer         `db:"-" json:"retailer,omitempty"`
	RetailerLocation *RetailerLocation `db:"-" json:"retailer_location,omitempty"`
}

type PosIntegrationCreate struct {
	RetailerLocationID string
	Name               string
	URL                string
	Key                string
	PosPlatform        PosPlatform
	Description        *string
}

type PosSimulatorActionType string

const (
	PosSimulatorActionGetHistoricalSales    PosSimulatorActionType = "GetHistoricalSales"
	PosSimulatorActionGetInventorySnapshots PosSimulatorActionType = "GetInventorySnapshots"
)

// PosSimulatorResponse is a canned provider response replayed instead of a live call.
type PosSimulatorResponse struct {
	BaseModel
	ResponseStatusCode int                    `db:"response_status_code" json:"response_status_code"`
	ActionType         PosSimulatorActionType `db:"action_type" json:"action_type"`
	ResponseBody       json.RawMessage        `db:"response_body" json:"response_body"`
	Description        *string                `db:"description" json:"description"`
}

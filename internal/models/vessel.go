package models

// VesselType categorises a vessel for sea-service records.
type VesselType string

const (
	VesselTanker       VesselType = "TANKER"
	VesselBulkCarrier  VesselType = "BULK_CARRIER"
	VesselContainer    VesselType = "CONTAINER"
	VesselGeneralCargo VesselType = "GENERAL_CARGO"
	VesselPassenger    VesselType = "PASSENGER"
	VesselOffshore     VesselType = "OFFSHORE"
	VesselOther        VesselType = "OTHER"
)

// Valid returns true when the type is a supported value.
func (t VesselType) Valid() bool {
	switch t {
	case VesselTanker, VesselBulkCarrier, VesselContainer, VesselGeneralCargo,
		VesselPassenger, VesselOffshore, VesselOther:
		return true
	default:
		return false
	}
}

// Vessel holds identity and machinery particulars of a ship the cadet
// served on. Vessels are reference data maintained ashore; the cadet app
// only selects them.
type Vessel struct {
	ID                  string      `db:"id" json:"id"`
	Name                string      `db:"name" json:"name"`
	IMONumber           *string     `db:"imo_number" json:"imo_number,omitempty"`
	CallSign            *string     `db:"call_sign" json:"call_sign,omitempty"`
	FlagState           *string     `db:"flag_state" json:"flag_state,omitempty"`
	VesselType          *VesselType `db:"vessel_type" json:"vessel_type,omitempty"`
	GrossTonnage        *float64    `db:"gross_tonnage" json:"gross_tonnage,omitempty"`
	LengthOverallM      *float64    `db:"length_overall_m" json:"length_overall_m,omitempty"`
	DesignDraftM        *float64    `db:"design_draft_m" json:"design_draft_m,omitempty"`
	MainEngineModel     *string     `db:"main_engine_model" json:"main_engine_model,omitempty"`
	MainEnginePowerKW   *float64    `db:"main_engine_power_kw" json:"main_engine_power_kw,omitempty"`
	GeneratorDetails    *string     `db:"generator_details" json:"generator_details,omitempty"`
	BoilerType          *string     `db:"boiler_type" json:"boiler_type,omitempty"`
	NavEquipmentSummary *string     `db:"nav_equipment_summary" json:"nav_equipment_summary,omitempty"`
	CreatedAt           string      `db:"created_at" json:"created_at"`
	UpdatedAt           string      `db:"updated_at" json:"updated_at"`
}

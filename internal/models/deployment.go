package models

// SeaServiceRole is the capacity in which the cadet sailed.
type SeaServiceRole string

const (
	RoleCadet           SeaServiceRole = "CADET"
	RoleTraineeEngineer SeaServiceRole = "TRAINEE_ENGINEER"
	RoleTraineeETO      SeaServiceRole = "TRAINEE_ETO"
	RoleOther           SeaServiceRole = "OTHER"
)

// Valid returns true when the role is a supported value.
func (r SeaServiceRole) Valid() bool {
	switch r {
	case RoleCadet, RoleTraineeEngineer, RoleTraineeETO, RoleOther:
		return true
	default:
		return false
	}
}

// SeaServiceDeployment is one contract of a cadet aboard a vessel, the
// backbone of sea-service day calculations. A nil SignOffDate means the
// contract is still open and no day count has been frozen yet.
type SeaServiceDeployment struct {
	ID                  string         `db:"id" json:"id"`
	CadetID             string         `db:"cadet_id" json:"cadet_id"`
	VesselID            string         `db:"vessel_id" json:"vessel_id"`
	Role                SeaServiceRole `db:"role" json:"role"`
	SignOnDate          string         `db:"sign_on_date" json:"sign_on_date"`
	SignOffDate         *string        `db:"sign_off_date" json:"sign_off_date,omitempty"`
	SignOnPort          *string        `db:"sign_on_port" json:"sign_on_port,omitempty"`
	SignOffPort         *string        `db:"sign_off_port" json:"sign_off_port,omitempty"`
	TotalDaysOnboard    int            `db:"total_days_onboard" json:"total_days_onboard"`
	TotalSeaDays        int            `db:"total_sea_days" json:"total_sea_days"`
	TotalPortDays       int            `db:"total_port_days" json:"total_port_days"`
	VoyageSummary       *string        `db:"voyage_summary" json:"voyage_summary,omitempty"`
	MasterName          *string        `db:"master_name" json:"master_name,omitempty"`
	MasterID            *string        `db:"master_id" json:"master_id,omitempty"`
	ChiefEngineerName   *string        `db:"chief_engineer_name" json:"chief_engineer_name,omitempty"`
	ChiefEngineerID     *string        `db:"chief_engineer_id" json:"chief_engineer_id,omitempty"`
	DSTOName            *string        `db:"dsto_name" json:"dsto_name,omitempty"`
	DSTOID              *string        `db:"dsto_id" json:"dsto_id,omitempty"`
	TestimonialText     *string        `db:"testimonial_text" json:"testimonial_text,omitempty"`
	TestimonialSignedAt *string        `db:"testimonial_signed_at" json:"testimonial_signed_at,omitempty"`
	CreatedAt           string         `db:"created_at" json:"created_at"`
	UpdatedAt           string         `db:"updated_at" json:"updated_at"`
}

// Open reports whether the contract is still running.
func (d *SeaServiceDeployment) Open() bool {
	return d.SignOffDate == nil || *d.SignOffDate == ""
}

// DeploymentDetail decorates a deployment with vessel columns for display.
type DeploymentDetail struct {
	SeaServiceDeployment
	VesselName      string  `db:"vessel_name" json:"vessel_name"`
	VesselTypeName  *string `db:"vessel_type_name" json:"vessel_type_name,omitempty"`
	VesselFlagState *string `db:"vessel_flag_state" json:"vessel_flag_state,omitempty"`
}

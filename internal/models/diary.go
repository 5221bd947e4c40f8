package models

// DiaryEntryType distinguishes daily diary notes from watch entries.
type DiaryEntryType string

const (
	EntryDaily       DiaryEntryType = "DAILY"
	EntryBridgeWatch DiaryEntryType = "BRIDGE"
	EntryEngineWatch DiaryEntryType = "ENGINE"
)

// Valid returns true when the entry type is a supported value.
func (t DiaryEntryType) Valid() bool {
	switch t {
	case EntryDaily, EntryBridgeWatch, EntryEngineWatch:
		return true
	default:
		return false
	}
}

// RequiresTimes reports whether the entry type is a watch with a
// start/end time range.
func (t DiaryEntryType) RequiresTimes() bool {
	return t == EntryBridgeWatch || t == EntryEngineWatch
}

// DiaryEntry is one diary or watchkeeping record. One table carries all
// three entry types; the type-specific columns are nullable.
type DiaryEntry struct {
	ID                  string         `db:"id" json:"id"`
	CadetID             string         `db:"cadet_id" json:"cadet_id"`
	DeploymentID        *string        `db:"deployment_id" json:"deployment_id,omitempty"`
	Date                string         `db:"date" json:"date"`
	EntryType           DiaryEntryType `db:"entry_type" json:"entry_type"`
	TimeStart           *string        `db:"time_start" json:"time_start,omitempty"`
	TimeEnd             *string        `db:"time_end" json:"time_end,omitempty"`
	Summary             *string        `db:"summary" json:"summary,omitempty"`
	PositionLat         *string        `db:"position_lat" json:"position_lat,omitempty"`
	PositionLon         *string        `db:"position_lon" json:"position_lon,omitempty"`
	CourseOverGroundDeg *float64       `db:"course_over_ground_deg" json:"course_over_ground_deg,omitempty"`
	SpeedOverGroundKn   *float64       `db:"speed_over_ground_knots" json:"speed_over_ground_knots,omitempty"`
	WeatherSummary      *string        `db:"weather_summary" json:"weather_summary,omitempty"`
	Role                *string        `db:"role" json:"role,omitempty"`
	SteeringMinutes     *int           `db:"steering_minutes" json:"steering_minutes,omitempty"`
	MachineryMonitored  *string        `db:"machinery_monitored" json:"machinery_monitored,omitempty"`
	Remarks             *string        `db:"remarks" json:"remarks,omitempty"`
	CreatedAt           string         `db:"created_at" json:"created_at"`
	UpdatedAt           string         `db:"updated_at" json:"updated_at"`
}

// DiaryChangeType constants label audit snapshots.
const (
	DiaryChangeUpdate = "UPDATE"
)

// DiaryEntryAudit is an append-only snapshot of a diary entry taken
// immediately before it is updated.
type DiaryEntryAudit struct {
	ID           string `db:"id" json:"id"`
	DiaryEntryID string `db:"diary_entry_id" json:"diary_entry_id"`
	CadetID      string `db:"cadet_id" json:"cadet_id"`
	SnapshotJSON []byte `db:"snapshot_json" json:"snapshot_json"`
	ChangeType   string `db:"change_type" json:"change_type"`
	ChangedAt    string `db:"changed_at" json:"changed_at"`
}

// WatchHoursSummary aggregates counted watch hours per entry type.
type WatchHoursSummary struct {
	BridgeHours float64 `json:"bridge_hours"`
	EngineHours float64 `json:"engine_hours"`
}

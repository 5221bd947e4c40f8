package bootstrap

import "github.com/noah-isme/cadet-trb/internal/models"

// defaultTemplates is the fixed TRB task catalogue, one set per stream.
// IDs are stable so re-seeding a wiped progress table reconnects to the
// same tasks.
var defaultTemplates = []models.TrainingTaskTemplate{
	// Deck stream
	{ID: "deck-nav-001", SectionCode: "NAV", Title: "Passage plan appraisal", Description: "Assist the navigating officer in appraising and preparing a berth-to-berth passage plan.", Stream: models.StreamDeck, IsMandatory: true},
	{ID: "deck-nav-002", SectionCode: "NAV", Title: "Position fixing", Description: "Fix the vessel's position by visual bearings, radar ranges and GNSS, and compare the results.", Stream: models.StreamDeck, IsMandatory: true},
	{ID: "deck-nav-003", SectionCode: "NAV", Title: "Chart corrections", Description: "Correct paper and electronic charts from the latest Notices to Mariners.", Stream: models.StreamDeck, IsMandatory: false},
	{ID: "deck-cargo-001", SectionCode: "CARGO", Title: "Cargo watch", Description: "Keep a cargo watch during loading or discharge under supervision of the duty officer.", Stream: models.StreamDeck, IsMandatory: true},
	{ID: "deck-cargo-002", SectionCode: "CARGO", Title: "Draft survey", Description: "Read drafts and calculate the cargo quantity by draft survey.", Stream: models.StreamDeck, IsMandatory: false},
	{ID: "deck-safety-001", SectionCode: "SAFETY", Title: "Fire drill participation", Description: "Take an active role in a shipboard fire drill and record the lessons learned.", Stream: models.StreamDeck, IsMandatory: true},
	{ID: "deck-life-001", SectionCode: "LIFE", Title: "Lifeboat preparation", Description: "Prepare a lifeboat for lowering, including engine checks and launching arrangements.", Stream: models.StreamDeck, IsMandatory: true},

	// Engine stream
	{ID: "eng-mach-001", SectionCode: "MACH", Title: "Main engine watch", Description: "Keep an engine-room watch, monitoring main engine parameters and logging readings.", Stream: models.StreamEngine, IsMandatory: true},
	{ID: "eng-mach-002", SectionCode: "MACH", Title: "Purifier operation", Description: "Start, operate and clean a fuel oil purifier under supervision.", Stream: models.StreamEngine, IsMandatory: true},
	{ID: "eng-mach-003", SectionCode: "MACH", Title: "Boiler water test", Description: "Carry out boiler water tests and dose chemicals as instructed.", Stream: models.StreamEngine, IsMandatory: false},
	{ID: "eng-elec-001", SectionCode: "ELEC", Title: "Generator changeover", Description: "Parallel generators and transfer load during a routine changeover.", Stream: models.StreamEngine, IsMandatory: true},
	{ID: "eng-safety-001", SectionCode: "SAFETY", Title: "Engine-room fire drill", Description: "Participate in an engine-room fire scenario drill and operate the fixed fire-fighting controls.", Stream: models.StreamEngine, IsMandatory: true},
	{ID: "eng-life-001", SectionCode: "LIFE", Title: "Emergency generator test", Description: "Test-run the emergency generator and verify automatic start on blackout.", Stream: models.StreamEngine, IsMandatory: true},

	// ETO stream
	{ID: "eto-elec-001", SectionCode: "ELEC", Title: "Switchboard maintenance", Description: "Assist in maintenance of the main switchboard, observing isolation procedures.", Stream: models.StreamETO, IsMandatory: true},
	{ID: "eto-auto-001", SectionCode: "AUTO", Title: "Alarm system test", Description: "Test engine-room alarm and monitoring channels and record the results.", Stream: models.StreamETO, IsMandatory: true},
	{ID: "eto-auto-002", SectionCode: "AUTO", Title: "Bridge equipment check", Description: "Carry out performance checks of radar, gyro and GNSS installations with the officer in charge.", Stream: models.StreamETO, IsMandatory: false},
	{ID: "eto-safety-001", SectionCode: "SAFETY", Title: "High-voltage safety", Description: "Demonstrate safe isolation and earthing of high-voltage equipment under supervision.", Stream: models.StreamETO, IsMandatory: true},
	{ID: "eto-life-001", SectionCode: "LIFE", Title: "GMDSS battery maintenance", Description: "Inspect and maintain GMDSS reserve batteries and record capacity readings.", Stream: models.StreamETO, IsMandatory: true},
}

func sampleVessel() *models.Vessel {
	vesselType := models.VesselContainer
	imo := "9321483"
	callSign := "9V7712"
	flag := "Singapore"
	engine := "MAN B&W 8K90ME-C"
	gt := 98799.0
	loa := 336.7
	power := 45760.0
	return &models.Vessel{
		ID:                "vessel-sample-001",
		Name:              "MV Coral Meridian",
		IMONumber:         &imo,
		CallSign:          &callSign,
		FlagState:         &flag,
		VesselType:        &vesselType,
		GrossTonnage:      &gt,
		LengthOverallM:    &loa,
		MainEngineModel:   &engine,
		MainEnginePowerKW: &power,
	}
}

func sampleDeployment(cadetID, vesselID string) *models.SeaServiceDeployment {
	port := "Singapore"
	summary := "Singapore - Fujairah - Rotterdam"
	return &models.SeaServiceDeployment{
		ID:            "deployment-sample-001",
		CadetID:       cadetID,
		VesselID:      vesselID,
		Role:          models.RoleCadet,
		SignOnDate:    "2024-01-15",
		SignOnPort:    &port,
		VoyageSummary: &summary,
	}
}

package store

import "github.com/jmoiron/sqlx"

// createSchema creates the TRB tables and indices. Every statement is
// idempotent so open can run on every app start.
func createSchema(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS cadet_profile (
		id TEXT PRIMARY KEY NOT NULL,
		full_name TEXT NOT NULL,
		date_of_birth TEXT,
		stream TEXT NOT NULL,
		discharge_book_no TEXT,
		passport_no TEXT,
		academy_name TEXT,
		academy_id TEXT,
		next_of_kin_name TEXT,
		next_of_kin_contact TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vessel (
		id TEXT PRIMARY KEY NOT NULL,
		name TEXT NOT NULL,
		imo_number TEXT,
		call_sign TEXT,
		flag_state TEXT,
		vessel_type TEXT,
		gross_tonnage REAL,
		length_overall_m REAL,
		design_draft_m REAL,
		main_engine_model TEXT,
		main_engine_power_kw REAL,
		generator_details TEXT,
		boiler_type TEXT,
		nav_equipment_summary TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sea_service_deployment (
		id TEXT PRIMARY KEY NOT NULL,
		cadet_id TEXT NOT NULL,
		vessel_id TEXT NOT NULL,
		role TEXT NOT NULL,
		sign_on_date TEXT NOT NULL,
		sign_off_date TEXT,
		sign_on_port TEXT,
		sign_off_port TEXT,
		total_days_onboard INTEGER NOT NULL DEFAULT 0,
		total_sea_days INTEGER NOT NULL DEFAULT 0,
		total_port_days INTEGER NOT NULL DEFAULT 0,
		voyage_summary TEXT,
		master_name TEXT,
		master_id TEXT,
		chief_engineer_name TEXT,
		chief_engineer_id TEXT,
		dsto_name TEXT,
		dsto_id TEXT,
		testimonial_text TEXT,
		testimonial_signed_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS training_task_template (
		id TEXT PRIMARY KEY NOT NULL,
		section_code TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		stream TEXT NOT NULL,
		is_mandatory INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS training_task_progress (
		id TEXT PRIMARY KEY NOT NULL,
		cadet_id TEXT NOT NULL,
		template_id TEXT NOT NULL,
		status TEXT NOT NULL,
		last_status_change_at TEXT,
		reflection_text TEXT,
		verified_by_id TEXT,
		verified_by_name TEXT,
		verified_at TEXT,
		approved_by_master_id TEXT,
		approved_by_master_name TEXT,
		approved_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (cadet_id, template_id)
	);

	CREATE TABLE IF NOT EXISTS task_evidence (
		id TEXT PRIMARY KEY NOT NULL,
		task_progress_id TEXT NOT NULL,
		local_uri TEXT NOT NULL,
		mime_type TEXT,
		file_size_bytes INTEGER,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS diary_entry (
		id TEXT PRIMARY KEY NOT NULL,
		cadet_id TEXT NOT NULL,
		deployment_id TEXT,
		date TEXT NOT NULL,
		entry_type TEXT NOT NULL,
		time_start TEXT,
		time_end TEXT,
		summary TEXT,
		position_lat TEXT,
		position_lon TEXT,
		course_over_ground_deg REAL,
		speed_over_ground_knots REAL,
		weather_summary TEXT,
		role TEXT,
		steering_minutes INTEGER,
		machinery_monitored TEXT,
		remarks TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS diary_entry_audit (
		id TEXT PRIMARY KEY NOT NULL,
		diary_entry_id TEXT NOT NULL,
		cadet_id TEXT NOT NULL,
		snapshot_json TEXT NOT NULL,
		change_type TEXT NOT NULL,
		changed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_deployment_cadet ON sea_service_deployment(cadet_id);
	CREATE INDEX IF NOT EXISTS idx_template_stream ON training_task_template(stream);
	CREATE INDEX IF NOT EXISTS idx_progress_cadet ON training_task_progress(cadet_id);
	CREATE INDEX IF NOT EXISTS idx_evidence_progress ON task_evidence(task_progress_id);
	CREATE INDEX IF NOT EXISTS idx_diary_cadet_date ON diary_entry(cadet_id, date);
	CREATE INDEX IF NOT EXISTS idx_diary_audit_entry ON diary_entry_audit(diary_entry_id);
	`

	_, err := db.Exec(schema)
	return err
}

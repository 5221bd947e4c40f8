package models

// TaskStatus tracks a training task through the TRB approval chain.
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskSubmitted TaskStatus = "SUBMITTED"
	TaskVerified  TaskStatus = "VERIFIED"
	TaskApproved  TaskStatus = "APPROVED"
)

// Valid returns true when the status is a supported value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskSubmitted, TaskVerified, TaskApproved:
		return true
	default:
		return false
	}
}

// CadetMutable reports whether the cadet may still change the row.
// VERIFIED and APPROVED belong to officer and Master roles and are
// read-only from the cadet's side.
func (s TaskStatus) CadetMutable() bool {
	return s == TaskPending || s == TaskSubmitted
}

// TrainingTaskTemplate is one static task from the TRB book. Immutable
// reference data, seeded once per stream.
type TrainingTaskTemplate struct {
	ID          string      `db:"id" json:"id"`
	SectionCode string      `db:"section_code" json:"section_code"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Stream      CadetStream `db:"stream" json:"stream"`
	IsMandatory bool        `db:"is_mandatory" json:"is_mandatory"`
}

// TrainingTaskProgress is the cadet-specific state for one template.
// At most one row exists per (cadet, template) pair; a missing row means
// the task is conceptually PENDING.
type TrainingTaskProgress struct {
	ID                   string     `db:"id" json:"id"`
	CadetID              string     `db:"cadet_id" json:"cadet_id"`
	TemplateID           string     `db:"template_id" json:"template_id"`
	Status               TaskStatus `db:"status" json:"status"`
	LastStatusChangeAt   *string    `db:"last_status_change_at" json:"last_status_change_at,omitempty"`
	ReflectionText       *string    `db:"reflection_text" json:"reflection_text,omitempty"`
	VerifiedByID         *string    `db:"verified_by_id" json:"verified_by_id,omitempty"`
	VerifiedByName       *string    `db:"verified_by_name" json:"verified_by_name,omitempty"`
	VerifiedAt           *string    `db:"verified_at" json:"verified_at,omitempty"`
	ApprovedByMasterID   *string    `db:"approved_by_master_id" json:"approved_by_master_id,omitempty"`
	ApprovedByMasterName *string    `db:"approved_by_master_name" json:"approved_by_master_name,omitempty"`
	ApprovedAt           *string    `db:"approved_at" json:"approved_at,omitempty"`
	CreatedAt            string     `db:"created_at" json:"created_at"`
	UpdatedAt            string     `db:"updated_at" json:"updated_at"`
}

// ProgressLookup makes the "no row means PENDING" default explicit so
// callers never special-case a nil progress pointer inline.
type ProgressLookup struct {
	Found    bool
	Progress *TrainingTaskProgress
}

// Status returns the effective status, PENDING when no row exists.
func (l ProgressLookup) Status() TaskStatus {
	if l.Found && l.Progress != nil {
		return l.Progress.Status
	}
	return TaskPending
}

// TaskWithProgress pairs a template with the cadet's effective progress
// for list screens.
type TaskWithProgress struct {
	Template TrainingTaskTemplate  `json:"template"`
	Status   TaskStatus            `json:"status"`
	Progress *TrainingTaskProgress `json:"progress,omitempty"`
}

// TaskEvidence is an attachment record linked to a progress row. Only the
// metadata is managed here; file transfer is the shell's concern.
type TaskEvidence struct {
	ID             string  `db:"id" json:"id"`
	TaskProgressID string  `db:"task_progress_id" json:"task_progress_id"`
	LocalURI       string  `db:"local_uri" json:"local_uri"`
	MimeType       *string `db:"mime_type" json:"mime_type,omitempty"`
	FileSizeBytes  *int64  `db:"file_size_bytes" json:"file_size_bytes,omitempty"`
	CreatedAt      string  `db:"created_at" json:"created_at"`
}

package models

// CadetStream identifies the cadet's specialization track.
type CadetStream string

const (
	StreamDeck   CadetStream = "DECK"
	StreamEngine CadetStream = "ENGINE"
	StreamETO    CadetStream = "ETO"
)

// Valid returns true when the stream is a supported value.
func (s CadetStream) Valid() bool {
	switch s {
	case StreamDeck, StreamEngine, StreamETO:
		return true
	default:
		return false
	}
}

// CadetProfile is the identity record owning a training record book.
// Exactly one row exists per device in the single-cadet deployment model.
type CadetProfile struct {
	ID               string      `db:"id" json:"id"`
	FullName         string      `db:"full_name" json:"full_name"`
	DateOfBirth      *string     `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Stream           CadetStream `db:"stream" json:"stream"`
	DischargeBookNo  *string     `db:"discharge_book_no" json:"discharge_book_no,omitempty"`
	PassportNo       *string     `db:"passport_no" json:"passport_no,omitempty"`
	AcademyName      *string     `db:"academy_name" json:"academy_name,omitempty"`
	AcademyID        *string     `db:"academy_id" json:"academy_id,omitempty"`
	NextOfKinName    *string     `db:"next_of_kin_name" json:"next_of_kin_name,omitempty"`
	NextOfKinContact *string     `db:"next_of_kin_contact" json:"next_of_kin_contact,omitempty"`
	CreatedAt        string      `db:"created_at" json:"created_at"`
	UpdatedAt        string      `db:"updated_at" json:"updated_at"`
}

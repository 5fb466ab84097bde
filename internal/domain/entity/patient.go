package entity

// Patient is the single persisted record type. Optional attributes are
// nil pointers so they reach storage as NULL rather than empty strings.
type Patient struct {
	ID                 int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName          string  `gorm:"type:text;not null" json:"first_name"`
	LastName           string  `gorm:"type:text;not null" json:"last_name"`
	Phone              string  `gorm:"type:text;not null" json:"phone"`
	DateOfBirth        string  `gorm:"type:text;not null" json:"date_of_birth"`
	Address            string  `gorm:"type:text;not null" json:"address"`
	RegistrationDate   string  `gorm:"type:text;not null" json:"registration_date"`
	NationalID         *string `gorm:"type:text" json:"national_id"`
	Gender             string  `gorm:"type:text;not null" json:"gender"`
	Email              *string `gorm:"type:text" json:"email"`
	EmergencyContact   *string `gorm:"type:text" json:"emergency_contact"`
	BloodType          *string `gorm:"type:text" json:"blood_type"`
	MedicalHistory     *string `gorm:"type:text" json:"medical_history"`
	InsuranceProvider  *string `gorm:"type:text" json:"insurance_provider"`
	InsuranceNumber    *string `gorm:"type:text" json:"insurance_number"`
	LanguagePreference *string `gorm:"type:text" json:"language_preference"`
	Notes              *string `gorm:"type:text" json:"notes"`
}

func (Patient) TableName() string {
	return PatientTable
}

const PatientTable = "patients"

// DateLayout is the ISO date format used for every stored date column.
const DateLayout = "2006-01-02"

// PatientColumns lists the non-identifier columns in bind order.
var PatientColumns = []string{
	"first_name",
	"last_name",
	"phone",
	"date_of_birth",
	"address",
	"registration_date",
	"national_id",
	"gender",
	"email",
	"emergency_contact",
	"blood_type",
	"medical_history",
	"insurance_provider",
	"insurance_number",
	"language_preference",
	"notes",
}

// Values returns the positional bind values matching PatientColumns.
func (p *Patient) Values() []interface{} {
	return []interface{}{
		p.FirstName,
		p.LastName,
		p.Phone,
		p.DateOfBirth,
		p.Address,
		p.RegistrationDate,
		p.NationalID,
		p.Gender,
		p.Email,
		p.EmergencyContact,
		p.BloodType,
		p.MedicalHistory,
		p.InsuranceProvider,
		p.InsuranceNumber,
		p.LanguagePreference,
		p.Notes,
	}
}

// Gender constants
const (
	GenderMale           = "Male"
	GenderFemale         = "Female"
	GenderOthers         = "Others"
	GenderPreferNotToSay = "Prefer not to say"
)

var Genders = []string{GenderMale, GenderFemale, GenderOthers, GenderPreferNotToSay}

// Blood type constants
const (
	BloodTypeAPositive  = "A+"
	BloodTypeANegative  = "A-"
	BloodTypeBPositive  = "B+"
	BloodTypeBNegative  = "B-"
	BloodTypeABPositive = "AB+"
	BloodTypeABNegative = "AB-"
	BloodTypeOPositive  = "O+"
	BloodTypeONegative  = "O-"
	BloodTypeUnknown    = "Unknown"
)

var BloodTypes = []string{
	BloodTypeAPositive, BloodTypeANegative,
	BloodTypeBPositive, BloodTypeBNegative,
	BloodTypeABPositive, BloodTypeABNegative,
	BloodTypeOPositive, BloodTypeONegative,
	BloodTypeUnknown,
}

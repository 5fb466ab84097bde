package dto

// Request DTOs

type CreatePatientRequest struct {
	FirstName          string `json:"first_name" validate:"required,min=2"`
	LastName           string `json:"last_name" validate:"required,min=2"`
	Phone              string `json:"phone" validate:"required,min=10"`
	DateOfBirth        string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Address            string `json:"address" validate:"required,min=5"`
	NationalID         string `json:"national_id"`
	Gender             string `json:"gender" validate:"required,oneof='Male' 'Female' 'Others' 'Prefer not to say'"`
	Email              string `json:"email" validate:"omitempty,email"`
	EmergencyContact   string `json:"emergency_contact"`
	BloodType          string `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O- Unknown"`
	MedicalHistory     string `json:"medical_history"`
	InsuranceProvider  string `json:"insurance_provider"`
	InsuranceNumber    string `json:"insurance_number"`
	LanguagePreference string `json:"language_preference"`
	Notes              string `json:"notes"`
}

// MaxSeedCount bounds one seed run. A bulk insert is a single statement and
// SQLite refuses more than 32766 bound parameters (2047 patients).
const MaxSeedCount = 1000

// The lte bound on Count mirrors MaxSeedCount.
type SeedPatientsRequest struct {
	Count int `json:"count" validate:"gte=0,lte=1000"`
}

// Response DTOs

type PatientResponse struct {
	ID                 int64   `json:"id"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Phone              string  `json:"phone"`
	DateOfBirth        string  `json:"date_of_birth"`
	Address            string  `json:"address"`
	RegistrationDate   string  `json:"registration_date"`
	NationalID         *string `json:"national_id"`
	Gender             string  `json:"gender"`
	Email              *string `json:"email"`
	EmergencyContact   *string `json:"emergency_contact"`
	BloodType          *string `json:"blood_type"`
	MedicalHistory     *string `json:"medical_history"`
	InsuranceProvider  *string `json:"insurance_provider"`
	InsuranceNumber    *string `json:"insurance_number"`
	LanguagePreference *string `json:"language_preference"`
	Notes              *string `json:"notes"`
}

type SeedPatientsResponse struct {
	Requested int `json:"requested"`
	Inserted  int `json:"inserted"`
}

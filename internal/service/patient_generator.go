package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"patient-record-manager/internal/domain/entity"

	"github.com/brianvoe/gofakeit/v7"
)

var (
	insuranceProviders = []string{"HDFC", "LIC", "SBI Life", "ICICI", "Axis"}
	languages          = []string{"English", "Kannada", "Tamil", "Punjabi", "Hindi"}
)

// genderWeights is the cumulative percentage distribution of generated genders.
var genderWeights = []struct {
	gender string
	upTo   int
}{
	{entity.GenderMale, 54},
	{entity.GenderFemale, 95},
	{entity.GenderOthers, 99},
	{entity.GenderPreferNotToSay, 100},
}

// Presence probability of each optional attribute.
const (
	chanceEmail             = 0.5
	chanceBloodType         = 0.5
	chanceMedicalHistory    = 0.8
	chanceLanguage          = 0.5
	chanceEmergencyContact  = 0.5
	chanceNationalID        = 0.4
	chanceInsuranceProvider = 0.6
	chanceInsuranceNumber   = 0.6
	chanceNotes             = 0.5
)

// PatientGenerator produces plausible synthetic patients.
// It is safe for concurrent use.
type PatientGenerator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewPatientGenerator creates a generator. A zero seed draws a random one.
func NewPatientGenerator(seed uint64, now func() time.Time) *PatientGenerator {
	if now == nil {
		now = time.Now
	}
	return &PatientGenerator{faker: gofakeit.New(seed), now: now}
}

// GenerateN returns n patients; n <= 0 yields an empty slice.
func (g *PatientGenerator) GenerateN(n int) []entity.Patient {
	if n <= 0 {
		return []entity.Patient{}
	}
	patients := make([]entity.Patient, 0, n)
	for i := 0; i < n; i++ {
		patients = append(patients, g.Generate())
	}
	return patients
}

func (g *PatientGenerator) Generate() entity.Patient {
	g.mu.Lock()
	defer g.mu.Unlock()

	f := g.faker
	now := g.now().UTC()
	first := f.FirstName()
	last := f.LastName()

	dob := f.DateRange(
		time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, time.December, 31, 0, 0, 0, 0, time.UTC),
	)
	registered := f.DateRange(now.AddDate(-1, 0, 0), now)

	p := entity.Patient{
		FirstName:        first,
		LastName:         last,
		Phone:            g.phone(),
		DateOfBirth:      dob.Format(entity.DateLayout),
		Address:          f.Street(),
		RegistrationDate: registered.Format(entity.DateLayout),
		Gender:           g.gender(),
	}

	if g.maybe(chanceEmail) {
		p.Email = ptr(emailFor(first, last, f.DomainName()))
	}
	if g.maybe(chanceBloodType) {
		p.BloodType = ptr(f.RandomString(entity.BloodTypes))
	}
	if g.maybe(chanceMedicalHistory) {
		p.MedicalHistory = ptr(f.LoremIpsumParagraph(1, 3, 8, " "))
	}
	if g.maybe(chanceLanguage) {
		p.LanguagePreference = ptr(f.RandomString(languages))
	}
	if g.maybe(chanceEmergencyContact) {
		p.EmergencyContact = ptr(f.Name() + " " + g.phone())
	}
	if g.maybe(chanceNationalID) {
		p.NationalID = ptr(f.Numerify("############"))
	}
	if g.maybe(chanceInsuranceProvider) {
		p.InsuranceProvider = ptr(f.RandomString(insuranceProviders))
	}
	if g.maybe(chanceInsuranceNumber) {
		p.InsuranceNumber = ptr(f.Numerify("########"))
	}
	if g.maybe(chanceNotes) {
		p.Notes = ptr(f.LoremIpsumSentence(8))
	}
	return p
}

func (g *PatientGenerator) maybe(chance float64) bool {
	return g.faker.Float64() < chance
}

func (g *PatientGenerator) gender() string {
	roll := g.faker.IntRange(1, 100)
	for _, w := range genderWeights {
		if roll <= w.upTo {
			return w.gender
		}
	}
	return entity.GenderPreferNotToSay
}

func (g *PatientGenerator) phone() string {
	return g.faker.Numerify("+91 ##########")
}

func emailFor(first, last, domain string) string {
	clean := func(s string) string {
		return strings.ToLower(strings.NewReplacer(" ", "", "'", "").Replace(s))
	}
	return fmt.Sprintf("%s.%s@%s", clean(first), clean(last), strings.ToLower(domain))
}

func ptr(s string) *string {
	return &s
}

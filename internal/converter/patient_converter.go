package converter

import (
	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(p *entity.Patient) *dto.PatientResponse {
	if p == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                 p.ID,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Phone:              p.Phone,
		DateOfBirth:        p.DateOfBirth,
		Address:            p.Address,
		RegistrationDate:   p.RegistrationDate,
		NationalID:         p.NationalID,
		Gender:             p.Gender,
		Email:              p.Email,
		EmergencyContact:   p.EmergencyContact,
		BloodType:          p.BloodType,
		MedicalHistory:     p.MedicalHistory,
		InsuranceProvider:  p.InsuranceProvider,
		InsuranceNumber:    p.InsuranceNumber,
		LanguagePreference: p.LanguagePreference,
		Notes:              p.Notes,
	}
}

// PatientsToResponses converts a list of Patient entities
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}

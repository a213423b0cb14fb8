package converter

import (
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
)

// NameLookup resolves display names for foreign keys. Missing ids map to
// the empty string.
type NameLookup struct {
	Patients map[int]string
	Doctors  map[int]string
}

// AppointmentToResponse converts an Appointment entity, filling patient and
// doctor names from names. A dangling reference yields an empty name.
func AppointmentToResponse(appointment *entity.Appointment, names NameLookup) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		PatientName: names.Patients[appointment.PatientID],
		DoctorID:    appointment.DoctorID,
		DoctorName:  names.Doctors[appointment.DoctorID],
		Date:        appointment.Date,
		Time:        appointment.Time,
		Reason:      appointment.Reason,
		Status:      string(appointment.Status),
	}
}

func AppointmentsToResponses(appointments []entity.Appointment, names NameLookup) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i], names)
	}
	return responses
}

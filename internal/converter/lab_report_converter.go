package converter

import (
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
)

func LabReportToResponse(report *entity.LabReport) *dto.LabReportResponse {
	if report == nil {
		return nil
	}

	r := report.Clone()
	return &dto.LabReportResponse{
		ID:            r.ID,
		PatientID:     r.PatientID,
		PatientName:   r.PatientName,
		TestType:      r.TestType,
		TestName:      r.TestName,
		TestDate:      r.TestDate,
		ResultDate:    r.ResultDate,
		Status:        string(r.Status),
		Priority:      r.Priority,
		Results:       r.Results,
		NormalRanges:  r.NormalRanges,
		DoctorNotes:   r.DoctorNotes,
		LabTechnician: r.LabTechnician,
		IsAbnormal:    r.IsAbnormal,
	}
}

func LabReportsToResponses(reports []entity.LabReport) []dto.LabReportResponse {
	responses := make([]dto.LabReportResponse, len(reports))
	for i := range reports {
		responses[i] = *LabReportToResponse(&reports[i])
	}
	return responses
}

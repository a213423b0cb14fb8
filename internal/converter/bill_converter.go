package converter

import (
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
)

func BillToResponse(bill *entity.Bill, names NameLookup) *dto.BillResponse {
	if bill == nil {
		return nil
	}

	return &dto.BillResponse{
		ID:          bill.ID,
		PatientID:   bill.PatientID,
		PatientName: names.Patients[bill.PatientID],
		Description: bill.Description,
		Amount:      bill.Amount,
		Date:        bill.Date,
		Status:      string(bill.Status),
	}
}

func BillsToResponses(bills []entity.Bill, names NameLookup) []dto.BillResponse {
	responses := make([]dto.BillResponse, len(bills))
	for i := range bills {
		responses[i] = *BillToResponse(&bills[i], names)
	}
	return responses
}

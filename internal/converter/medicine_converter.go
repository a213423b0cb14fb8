package converter

import (
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
)

// MedicineToResponse converts a Medicine entity and attaches its derived
// stock status.
func MedicineToResponse(medicine *entity.Medicine) *dto.MedicineResponse {
	if medicine == nil {
		return nil
	}

	return &dto.MedicineResponse{
		ID:           medicine.ID,
		Name:         medicine.Name,
		Category:     medicine.Category,
		Price:        medicine.Price,
		Quantity:     medicine.Quantity,
		StockStatus:  string(medicine.StockStatus()),
		Expiry:       medicine.Expiry,
		Description:  medicine.Description,
		Manufacturer: medicine.Manufacturer,
	}
}

func MedicinesToResponses(medicines []entity.Medicine) []dto.MedicineResponse {
	responses := make([]dto.MedicineResponse, len(medicines))
	for i := range medicines {
		responses[i] = *MedicineToResponse(&medicines[i])
	}
	return responses
}

package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
)

type medicineRepository struct{}

func NewMedicineRepository() domainRepo.MedicineRepository {
	return &medicineRepository{}
}

func (r *medicineRepository) Create(ctx context.Context, tx *memory.Tx, medicine *entity.Medicine) error {
	medicine.ID = tx.NextID(medicinesTable)
	return tx.Insert(medicinesTable, medicine.ID, *medicine)
}

func (r *medicineRepository) FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.Medicine, error) {
	medicine, ok := memory.Find[entity.Medicine](tx, medicinesTable, id)
	if !ok {
		return nil, nil
	}
	return &medicine, nil
}

func (r *medicineRepository) FindAll(ctx context.Context, tx *memory.Tx, filter *entity.MedicineFilter) ([]entity.Medicine, error) {
	medicines := memory.Scan(tx, medicinesTable, func(m entity.Medicine) bool {
		if filter == nil {
			return true
		}
		if filter.Category != "" && m.Category != filter.Category {
			return false
		}
		return containsFold(filter.Search, m.Name, m.Category, m.Manufacturer)
	})
	return medicines, nil
}

func (r *medicineRepository) Update(ctx context.Context, tx *memory.Tx, medicine *entity.Medicine) error {
	return tx.Put(medicinesTable, medicine.ID, *medicine)
}

func (r *medicineRepository) Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error) {
	return tx.Delete(medicinesTable, id)
}

package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
)

type billRepository struct{}

func NewBillRepository() domainRepo.BillRepository {
	return &billRepository{}
}

func (r *billRepository) Create(ctx context.Context, tx *memory.Tx, bill *entity.Bill) error {
	bill.ID = tx.NextID(billsTable)
	return tx.Insert(billsTable, bill.ID, *bill)
}

func (r *billRepository) FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.Bill, error) {
	bill, ok := memory.Find[entity.Bill](tx, billsTable, id)
	if !ok {
		return nil, nil
	}
	return &bill, nil
}

func (r *billRepository) FindAll(ctx context.Context, tx *memory.Tx, filter *entity.BillFilter) ([]entity.Bill, error) {
	return r.scan(tx, filter, nil), nil
}

func (r *billRepository) FindByPatientID(ctx context.Context, tx *memory.Tx, patientID int, filter *entity.BillFilter) ([]entity.Bill, error) {
	return r.scan(tx, filter, func(b entity.Bill) bool { return b.PatientID == patientID }), nil
}

func (r *billRepository) Update(ctx context.Context, tx *memory.Tx, bill *entity.Bill) error {
	return tx.Put(billsTable, bill.ID, *bill)
}

func (r *billRepository) Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error) {
	return tx.Delete(billsTable, id)
}

func (r *billRepository) scan(tx *memory.Tx, filter *entity.BillFilter, scope func(entity.Bill) bool) []entity.Bill {
	return memory.Scan(tx, billsTable, func(b entity.Bill) bool {
		if scope != nil && !scope(b) {
			return false
		}
		return filter == nil || filter.Status == "" || b.Status == filter.Status
	})
}

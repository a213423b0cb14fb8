package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, tx *memory.Tx, patient *entity.Patient) error {
	patient.ID = tx.NextID(patientsTable)
	return tx.Insert(patientsTable, patient.ID, clonePatient(*patient))
}

func (r *patientRepository) FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.Patient, error) {
	patient, ok := memory.Find[entity.Patient](tx, patientsTable, id)
	if !ok {
		return nil, nil
	}
	patient = clonePatient(patient)
	return &patient, nil
}

func (r *patientRepository) FindByUserID(ctx context.Context, tx *memory.Tx, userID int) (*entity.Patient, error) {
	patients := memory.Scan(tx, patientsTable, func(p entity.Patient) bool {
		return p.OwnedBy(userID)
	})
	if len(patients) == 0 {
		return nil, nil
	}
	patient := clonePatient(patients[0])
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context, tx *memory.Tx, filter *entity.PatientFilter) ([]entity.Patient, error) {
	patients := memory.Scan(tx, patientsTable, func(p entity.Patient) bool {
		return filter == nil || containsFold(filter.Search, p.Name, p.Contact)
	})
	for i := range patients {
		patients[i] = clonePatient(patients[i])
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, tx *memory.Tx, patient *entity.Patient) error {
	return tx.Put(patientsTable, patient.ID, clonePatient(*patient))
}

func (r *patientRepository) Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error) {
	return tx.Delete(patientsTable, id)
}

func clonePatient(p entity.Patient) entity.Patient {
	p.UserID = cloneIntPtr(p.UserID)
	return p
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, tx *memory.Tx, doctor *entity.Doctor) error {
	doctor.ID = tx.NextID(doctorsTable)
	return tx.Insert(doctorsTable, doctor.ID, cloneDoctor(*doctor))
}

func (r *doctorRepository) FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.Doctor, error) {
	doctor, ok := memory.Find[entity.Doctor](tx, doctorsTable, id)
	if !ok {
		return nil, nil
	}
	doctor = cloneDoctor(doctor)
	return &doctor, nil
}

func (r *doctorRepository) FindByUserID(ctx context.Context, tx *memory.Tx, userID int) (*entity.Doctor, error) {
	doctors := memory.Scan(tx, doctorsTable, func(d entity.Doctor) bool {
		return d.OwnedBy(userID)
	})
	if len(doctors) == 0 {
		return nil, nil
	}
	doctor := cloneDoctor(doctors[0])
	return &doctor, nil
}

func (r *doctorRepository) FindAll(ctx context.Context, tx *memory.Tx, filter *entity.DoctorFilter) ([]entity.Doctor, error) {
	doctors := memory.Scan(tx, doctorsTable, func(d entity.Doctor) bool {
		if filter == nil {
			return true
		}
		if filter.AvailableOnly && !d.Available {
			return false
		}
		return containsFold(filter.Search, d.Name, d.Specialization)
	})
	for i := range doctors {
		doctors[i] = cloneDoctor(doctors[i])
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, tx *memory.Tx, doctor *entity.Doctor) error {
	return tx.Put(doctorsTable, doctor.ID, cloneDoctor(*doctor))
}

func (r *doctorRepository) Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error) {
	return tx.Delete(doctorsTable, id)
}

func cloneDoctor(d entity.Doctor) entity.Doctor {
	d.UserID = cloneIntPtr(d.UserID)
	return d
}

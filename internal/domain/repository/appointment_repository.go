package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/infrastructure/memory"
)

type AppointmentRepository interface {
	Create(ctx context.Context, tx *memory.Tx, appointment *entity.Appointment) error
	FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.Appointment, error)
	FindAll(ctx context.Context, tx *memory.Tx, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByPatientID(ctx context.Context, tx *memory.Tx, patientID int, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByDoctorID(ctx context.Context, tx *memory.Tx, doctorID int, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	Update(ctx context.Context, tx *memory.Tx, appointment *entity.Appointment) error
	Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error)
}

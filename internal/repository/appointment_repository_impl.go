package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, tx *memory.Tx, appointment *entity.Appointment) error {
	appointment.ID = tx.NextID(appointmentsTable)
	return tx.Insert(appointmentsTable, appointment.ID, *appointment)
}

func (r *appointmentRepository) FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.Appointment, error) {
	appointment, ok := memory.Find[entity.Appointment](tx, appointmentsTable, id)
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, tx *memory.Tx, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	return r.scan(tx, filter, nil), nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, tx *memory.Tx, patientID int, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	return r.scan(tx, filter, func(a entity.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, tx *memory.Tx, doctorID int, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	return r.scan(tx, filter, func(a entity.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r *appointmentRepository) Update(ctx context.Context, tx *memory.Tx, appointment *entity.Appointment) error {
	return tx.Put(appointmentsTable, appointment.ID, *appointment)
}

func (r *appointmentRepository) Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error) {
	return tx.Delete(appointmentsTable, id)
}

func (r *appointmentRepository) scan(tx *memory.Tx, filter *entity.AppointmentFilter, scope func(entity.Appointment) bool) []entity.Appointment {
	return memory.Scan(tx, appointmentsTable, func(a entity.Appointment) bool {
		if scope != nil && !scope(a) {
			return false
		}
		return filter == nil || filter.Status == "" || a.Status == filter.Status
	})
}

package usecase

import (
	"context"

	"hospital-records/internal/converter"
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
	"hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
	"hospital-records/internal/policy"
	"hospital-records/internal/service"
	"hospital-records/pkg/apperror"
	"hospital-records/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AppointmentUsecase interface {
	List(ctx context.Context, filter *entity.AppointmentFilter) ([]dto.AppointmentResponse, error)
	Get(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id int) error
	Complete(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, id int, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db               *memory.DB
	log              *logrus.Logger
	validator        *validator.CustomValidator
	actors           *ActorResolver
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	doctorRepo       repository.DoctorRepository
	integrityService service.IntegrityService
	auditService     service.AuditService
}

func NewAppointmentUsecase(
	db *memory.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	actors *ActorResolver,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	integrityService service.IntegrityService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		validator:        validator,
		actors:           actors,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		doctorRepo:       doctorRepo,
		integrityService: integrityService,
		auditService:     auditService,
	}
}

// List is scoped by role: admins see everything, doctors the appointments
// booked with them, patients their own bookings.
func (u *appointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAppointment(actor, policy.OpRead, nil); err != nil {
		return nil, err
	}

	var appointments []entity.Appointment
	switch {
	case actor.IsAdmin():
		appointments, err = u.appointmentRepo.FindAll(ctx, tx, filter)
	case actor.IsDoctor() && actor.DoctorID != 0:
		appointments, err = u.appointmentRepo.FindByDoctorID(ctx, tx, actor.DoctorID, filter)
	case actor.IsPatient() && actor.PatientID != 0:
		appointments, err = u.appointmentRepo.FindByPatientID(ctx, tx, actor.PatientID, filter)
	}
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	names, err := loadNames(ctx, tx, u.patientRepo, u.doctorRepo)
	if err != nil {
		u.log.Warnf("Failed to load names: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments, names), nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAppointment(actor, policy.OpRead, appointment); err != nil {
		return nil, err
	}

	return u.response(ctx, tx, appointment)
}

// Create books an appointment in the scheduled state. Patients book for
// themselves; the doctor must exist and be available.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	patientID := req.PatientID
	if patientID == 0 && actor.IsPatient() {
		patientID = actor.PatientID
	}

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Reason:    req.Reason,
		Status:    entity.AppointmentStatusScheduled,
	}
	if err := policy.AuthorizeAppointment(actor, policy.OpCreate, appointment); err != nil {
		return nil, err
	}
	if patientID == 0 {
		return nil, apperror.NewValidationError("patient_id", "patient_id is required")
	}

	if _, err := u.integrityService.RequirePatient(ctx, tx, "patientId", appointment.PatientID); err != nil {
		return nil, err
	}
	doctor, err := u.integrityService.RequireDoctor(ctx, tx, "doctorId", appointment.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.Available {
		return nil, apperror.NewValidationError("doctor_id", "doctor is not available for booking")
	}

	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.UserID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID, *appointment); err != nil {
		return nil, err
	}

	response, err := u.response(ctx, tx, appointment)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%d, patient=%d, doctor=%d", appointment.ID, appointment.PatientID, appointment.DoctorID)
	return response, nil
}

// Update edits booking details. Both foreign keys are re-validated.
func (u *appointmentUsecase) Update(ctx context.Context, id int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAppointment(actor, policy.OpUpdate, appointment); err != nil {
		return nil, err
	}

	if _, err := u.integrityService.RequirePatient(ctx, tx, "patientId", req.PatientID); err != nil {
		return nil, err
	}
	if _, err := u.integrityService.RequireDoctor(ctx, tx, "doctorId", req.DoctorID); err != nil {
		return nil, err
	}

	old := *appointment
	appointment.PatientID = req.PatientID
	appointment.DoctorID = req.DoctorID
	appointment.Date = req.Date
	appointment.Time = req.Time
	appointment.Reason = req.Reason

	return u.save(ctx, tx, actor, entity.AuditActionAppointmentUpdate, old, appointment)
}

func (u *appointmentUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return err
	}

	appointment, err := u.find(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeAppointment(actor, policy.OpDelete, appointment); err != nil {
		return err
	}

	if _, err := u.appointmentRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.UserID, entity.AuditActionAppointmentDelete, "appointment", id, *appointment); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Appointment deleted: id=%d", id)
	return nil
}

func (u *appointmentUsecase) Complete(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, policy.ActionComplete, func(a *entity.Appointment) error {
		return a.Complete()
	})
}

func (u *appointmentUsecase) Cancel(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, policy.ActionCancel, func(a *entity.Appointment) error {
		return a.Cancel()
	})
}

// Reschedule moves a scheduled appointment to a new date and time. The
// status stays scheduled.
func (u *appointmentUsecase) Reschedule(ctx context.Context, id int, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}
	return u.transition(ctx, id, policy.ActionReschedule, func(a *entity.Appointment) error {
		return a.Reschedule(req.Date, req.Time)
	})
}

func (u *appointmentUsecase) transition(ctx context.Context, id int, action policy.AppointmentAction, apply func(*entity.Appointment) error) (*dto.AppointmentResponse, error) {
	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAppointmentAction(actor, action, appointment); err != nil {
		return nil, err
	}

	old := *appointment
	if err := apply(appointment); err != nil {
		return nil, err
	}

	return u.save(ctx, tx, actor, entity.AuditActionAppointmentStatus, old, appointment)
}

func (u *appointmentUsecase) save(ctx context.Context, tx *memory.Tx, actor policy.Actor, action string, old entity.Appointment, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	if err := u.appointmentRepo.Update(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", appointment.ID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, action, "appointment", appointment.ID, old, *appointment); err != nil {
		return nil, err
	}

	response, err := u.response(ctx, tx, appointment)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment updated: id=%d, status=%s", appointment.ID, appointment.Status)
	return response, nil
}

func (u *appointmentUsecase) find(ctx context.Context, tx *memory.Tx, id int) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NewNotFoundError("appointment", id)
	}
	return appointment, nil
}

func (u *appointmentUsecase) response(ctx context.Context, tx *memory.Tx, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	names, err := loadNames(ctx, tx, u.patientRepo, u.doctorRepo)
	if err != nil {
		u.log.Warnf("Failed to load names: %+v", err)
		return nil, err
	}
	return converter.AppointmentToResponse(appointment, names), nil
}

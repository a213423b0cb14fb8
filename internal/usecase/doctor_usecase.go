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

type DoctorUsecase interface {
	List(ctx context.Context, filter *entity.DoctorFilter) ([]dto.DoctorResponse, error)
	Get(ctx context.Context, id int) (*dto.DoctorResponse, error)
	Create(ctx context.Context, req *dto.DoctorRequest) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id int, req *dto.DoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id int) error
	ToggleAvailability(ctx context.Context, id int) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db           *memory.DB
	log          *logrus.Logger
	validator    *validator.CustomValidator
	actors       *ActorResolver
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *memory.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	actors *ActorResolver,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		validator:    validator,
		actors:       actors,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) List(ctx context.Context, filter *entity.DoctorFilter) ([]dto.DoctorResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeDoctor(actor, policy.OpRead, nil); err != nil {
		return nil, err
	}

	doctors, err := u.doctorRepo.FindAll(ctx, tx, filter)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToResponses(doctors), nil
}

func (u *doctorUsecase) Get(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	doctor, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeDoctor(actor, policy.OpRead, doctor); err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.DoctorRequest) (*dto.DoctorResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeDoctor(actor, policy.OpCreate, nil); err != nil {
		return nil, err
	}

	doctor := &entity.Doctor{
		Name:           req.Name,
		Specialization: req.Specialization,
		Schedule:       req.Schedule,
		Available:      true,
	}
	if req.Available != nil {
		doctor.Available = *req.Available
	}

	if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.UserID, entity.AuditActionDoctorCreate, "doctor", doctor.ID, *doctor); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor created: id=%d", doctor.ID)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Update(ctx context.Context, id int, req *dto.DoctorRequest) (*dto.DoctorResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	doctor, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeDoctor(actor, policy.OpUpdate, doctor); err != nil {
		return nil, err
	}

	old := *doctor
	doctor.Name = req.Name
	doctor.Specialization = req.Specialization
	doctor.Schedule = req.Schedule
	if req.Available != nil {
		doctor.Available = *req.Available
	}

	if err := u.doctorRepo.Update(ctx, tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionDoctorUpdate, "doctor", id, old, *doctor); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// Delete removes the doctor only; appointments keep their doctorId.
func (u *doctorUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return err
	}

	doctor, err := u.find(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeDoctor(actor, policy.OpDelete, doctor); err != nil {
		return err
	}

	if _, err := u.doctorRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete doctor %d: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.UserID, entity.AuditActionDoctorDelete, "doctor", id, *doctor); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Doctor deleted: id=%d", id)
	return nil
}

func (u *doctorUsecase) ToggleAvailability(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeDoctorAvailability(actor); err != nil {
		return nil, err
	}

	doctor, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	old := *doctor
	doctor.ToggleAvailability()

	if err := u.doctorRepo.Update(ctx, tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionDoctorAvailability, "doctor", id, old.Available, doctor.Available); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor availability changed: id=%d, available=%t", id, doctor.Available)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) find(ctx context.Context, tx *memory.Tx, id int) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, apperror.NewNotFoundError("doctor", id)
	}
	return doctor, nil
}

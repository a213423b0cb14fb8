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

type PatientUsecase interface {
	List(ctx context.Context, filter *entity.PatientFilter) ([]dto.PatientResponse, error)
	Get(ctx context.Context, id int) (*dto.PatientResponse, error)
	Create(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error)
	Update(ctx context.Context, id int, req *dto.PatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id int) error
}

type patientUsecase struct {
	db           *memory.DB
	log          *logrus.Logger
	validator    *validator.CustomValidator
	actors       *ActorResolver
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *memory.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	actors *ActorResolver,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		validator:    validator,
		actors:       actors,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

// List returns every patient for admins and doctors, and only the caller's
// own record for patients.
func (u *patientUsecase) List(ctx context.Context, filter *entity.PatientFilter) ([]dto.PatientResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizePatient(actor, policy.OpRead, nil); err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindAll(ctx, tx, filter)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	if actor.IsPatient() {
		own := patients[:0]
		for _, p := range patients {
			if p.OwnedBy(actor.UserID) {
				own = append(own, p)
			}
		}
		patients = own
	}

	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) Get(ctx context.Context, id int) (*dto.PatientResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	patient, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizePatient(actor, policy.OpRead, patient); err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}
	age, err := parseCount("age", req.Age, false)
	if err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizePatient(actor, policy.OpCreate, nil); err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		Name:           req.Name,
		Age:            age,
		Gender:         req.Gender,
		Contact:        req.Contact,
		MedicalHistory: req.MedicalHistory,
	}
	if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.UserID, entity.AuditActionPatientCreate, "patient", patient.ID, *patient); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient created: id=%d", patient.ID)
	return converter.PatientToResponse(patient), nil
}

// Update replaces the editable fields. The account link is never changed
// here.
func (u *patientUsecase) Update(ctx context.Context, id int, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}
	age, err := parseCount("age", req.Age, false)
	if err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	patient, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizePatient(actor, policy.OpUpdate, patient); err != nil {
		return nil, err
	}

	old := *patient
	patient.Name = req.Name
	patient.Age = age
	patient.Gender = req.Gender
	patient.Contact = req.Contact
	patient.MedicalHistory = req.MedicalHistory

	if err := u.patientRepo.Update(ctx, tx, patient); err != nil {
		u.log.Warnf("Failed to update patient %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionPatientUpdate, "patient", id, old, *patient); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// Delete removes the patient only. Appointments, bills and lab reports that
// point at it are kept and show up in the integrity report.
func (u *patientUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return err
	}

	patient, err := u.find(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizePatient(actor, policy.OpDelete, patient); err != nil {
		return err
	}

	if _, err := u.patientRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete patient %d: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.UserID, entity.AuditActionPatientDelete, "patient", id, *patient); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Patient deleted: id=%d", id)
	return nil
}

func (u *patientUsecase) find(ctx context.Context, tx *memory.Tx, id int) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("patient", id)
	}
	return patient, nil
}

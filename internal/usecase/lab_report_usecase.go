package usecase

import (
	"context"
	"errors"

	"hospital-records/config"
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

type LabReportUsecase interface {
	List(ctx context.Context, filter *entity.LabReportFilter) ([]dto.LabReportResponse, error)
	Get(ctx context.Context, id int) (*dto.LabReportResponse, error)
	Create(ctx context.Context, req *dto.LabReportRequest) (*dto.LabReportResponse, error)
	Update(ctx context.Context, id int, req *dto.LabReportRequest) (*dto.LabReportResponse, error)
	Delete(ctx context.Context, id int) error
}

type labReportUsecase struct {
	db               *memory.DB
	log              *logrus.Logger
	validator        *validator.CustomValidator
	integrityConfig  config.IntegrityConfig
	actors           *ActorResolver
	labReportRepo    repository.LabReportRepository
	integrityService service.IntegrityService
	auditService     service.AuditService
}

func NewLabReportUsecase(
	db *memory.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	integrityConfig config.IntegrityConfig,
	actors *ActorResolver,
	labReportRepo repository.LabReportRepository,
	integrityService service.IntegrityService,
	auditService service.AuditService,
) LabReportUsecase {
	return &labReportUsecase{
		db:               db,
		log:              log,
		validator:        validator,
		integrityConfig:  integrityConfig,
		actors:           actors,
		labReportRepo:    labReportRepo,
		integrityService: integrityService,
		auditService:     auditService,
	}
}

// List returns every report to admins and doctors and only the caller's
// own reports to patients.
func (u *labReportUsecase) List(ctx context.Context, filter *entity.LabReportFilter) ([]dto.LabReportResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeLabReport(actor, policy.OpRead, nil); err != nil {
		return nil, err
	}

	var reports []entity.LabReport
	switch {
	case !actor.IsPatient():
		reports, err = u.labReportRepo.FindAll(ctx, tx, filter)
	case actor.PatientID != 0:
		reports, err = u.labReportRepo.FindByPatientID(ctx, tx, actor.PatientID, filter)
	}
	if err != nil {
		u.log.Warnf("Failed to find lab reports: %+v", err)
		return nil, err
	}

	return converter.LabReportsToResponses(reports), nil
}

func (u *labReportUsecase) Get(ctx context.Context, id int) (*dto.LabReportResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	report, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeLabReport(actor, policy.OpRead, report); err != nil {
		return nil, err
	}

	return converter.LabReportToResponse(report), nil
}

func (u *labReportUsecase) Create(ctx context.Context, req *dto.LabReportRequest) (*dto.LabReportResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeLabReport(actor, policy.OpCreate, nil); err != nil {
		return nil, err
	}

	report := &entity.LabReport{Status: entity.LabReportStatusPending, Priority: entity.LabPriorityNormal}
	if err := u.apply(ctx, tx, report, req); err != nil {
		return nil, err
	}

	if err := u.labReportRepo.Create(ctx, tx, report); err != nil {
		u.log.Warnf("Failed to create lab report: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.UserID, entity.AuditActionLabReportCreate, "lab_report", report.ID, report.Clone()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Lab report created: id=%d, patient=%d", report.ID, report.PatientID)
	return converter.LabReportToResponse(report), nil
}

// Update replaces the report's fields and refreshes the patient name
// snapshot. Doctors may only edit reports that are still pending.
func (u *labReportUsecase) Update(ctx context.Context, id int, req *dto.LabReportRequest) (*dto.LabReportResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	report, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeLabReport(actor, policy.OpUpdate, report); err != nil {
		return nil, err
	}

	old := report.Clone()
	if err := u.apply(ctx, tx, report, req); err != nil {
		return nil, err
	}

	if err := u.labReportRepo.Update(ctx, tx, report); err != nil {
		u.log.Warnf("Failed to update lab report %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionLabReportUpdate, "lab_report", id, old, report.Clone()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabReportToResponse(report), nil
}

func (u *labReportUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return err
	}

	report, err := u.find(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeLabReport(actor, policy.OpDelete, report); err != nil {
		return err
	}

	if _, err := u.labReportRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete lab report %d: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.UserID, entity.AuditActionLabReportDelete, "lab_report", id, report.Clone()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Lab report deleted: id=%d", id)
	return nil
}

// apply copies request fields onto report. Status and priority keep their
// current value when omitted, result date falls back to the test date.
func (u *labReportUsecase) apply(ctx context.Context, tx *memory.Tx, report *entity.LabReport, req *dto.LabReportRequest) error {
	patientName, err := u.patientName(ctx, tx, req.PatientID)
	if err != nil {
		return err
	}

	report.PatientID = req.PatientID
	report.PatientName = patientName
	report.TestType = req.TestType
	report.TestName = req.TestName
	report.TestDate = req.TestDate
	report.ResultDate = req.ResultDate
	if report.ResultDate == "" {
		report.ResultDate = req.TestDate
	}
	if req.Status != "" {
		report.Status = entity.LabReportStatus(req.Status)
	}
	if req.Priority != "" {
		report.Priority = req.Priority
	}
	report.Results = req.Results
	report.NormalRanges = req.NormalRanges
	report.DoctorNotes = req.DoctorNotes
	report.LabTechnician = req.LabTechnician
	report.IsAbnormal = req.IsAbnormal

	*report = report.Clone()
	return nil
}

// patientName resolves the snapshot name. In lenient mode a missing
// patient yields an empty name instead of an error.
func (u *labReportUsecase) patientName(ctx context.Context, tx *memory.Tx, patientID int) (string, error) {
	patient, err := u.integrityService.RequirePatient(ctx, tx, "patientId", patientID)
	if err != nil {
		if !u.integrityConfig.StrictLabReports && errors.Is(err, apperror.ErrDanglingReference) {
			u.log.Warnf("Lab report references missing patient %d, storing without name", patientID)
			return "", nil
		}
		return "", err
	}
	return patient.Name, nil
}

func (u *labReportUsecase) find(ctx context.Context, tx *memory.Tx, id int) (*entity.LabReport, error) {
	report, err := u.labReportRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find lab report %d: %+v", id, err)
		return nil, err
	}
	if report == nil {
		return nil, apperror.NewNotFoundError("lab report", id)
	}
	return report, nil
}

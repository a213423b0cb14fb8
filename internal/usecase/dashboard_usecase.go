package usecase

import (
	"context"

	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
	"hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
	"hospital-records/internal/policy"
	"hospital-records/internal/service"

	"github.com/sirupsen/logrus"
)

type DashboardUsecase interface {
	Stats(ctx context.Context) (*dto.DashboardResponse, error)
	IntegrityReport(ctx context.Context) (*dto.IntegrityReportResponse, error)
}

type dashboardUsecase struct {
	db               *memory.DB
	log              *logrus.Logger
	actors           *ActorResolver
	patientRepo      repository.PatientRepository
	doctorRepo       repository.DoctorRepository
	appointmentRepo  repository.AppointmentRepository
	billRepo         repository.BillRepository
	integrityService service.IntegrityService
}

func NewDashboardUsecase(
	db *memory.DB,
	log *logrus.Logger,
	actors *ActorResolver,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	billRepo repository.BillRepository,
	integrityService service.IntegrityService,
) DashboardUsecase {
	return &dashboardUsecase{
		db:               db,
		log:              log,
		actors:           actors,
		patientRepo:      patientRepo,
		doctorRepo:       doctorRepo,
		appointmentRepo:  appointmentRepo,
		billRepo:         billRepo,
		integrityService: integrityService,
	}
}

// Stats counts the records visible to the caller. Revenue is the sum of
// paid bills: all of them for admins, the caller's own for patients, and
// omitted for doctors.
func (u *dashboardUsecase) Stats(ctx context.Context) (*dto.DashboardResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindAll(ctx, tx, nil)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}
	doctors, err := u.doctorRepo.FindAll(ctx, tx, nil)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	stats := &dto.DashboardResponse{
		Role:         string(actor.Role),
		TotalDoctors: len(doctors),
	}

	var (
		appointments []entity.Appointment
		bills        []entity.Bill
	)
	switch actor.Role {
	case entity.RoleAdmin:
		stats.TotalPatients = len(patients)
		if appointments, err = u.appointmentRepo.FindAll(ctx, tx, nil); err != nil {
			break
		}
		bills, err = u.billRepo.FindAll(ctx, tx, nil)
	case entity.RoleDoctor:
		stats.TotalPatients = len(patients)
		if actor.DoctorID != 0 {
			appointments, err = u.appointmentRepo.FindByDoctorID(ctx, tx, actor.DoctorID, nil)
		}
	case entity.RolePatient:
		if actor.PatientID != 0 {
			stats.TotalPatients = 1
			if appointments, err = u.appointmentRepo.FindByPatientID(ctx, tx, actor.PatientID, nil); err != nil {
				break
			}
			bills, err = u.billRepo.FindByPatientID(ctx, tx, actor.PatientID, nil)
		}
	}
	if err != nil {
		u.log.Warnf("Failed to load dashboard records: %+v", err)
		return nil, err
	}

	stats.TotalAppointments = len(appointments)
	if !actor.IsDoctor() {
		revenue := entity.SumAmounts(bills, entity.BillStatusPaid)
		stats.Revenue = &revenue
	}

	return stats, nil
}

// IntegrityReport lists references left dangling by deletes.
func (u *dashboardUsecase) IntegrityReport(ctx context.Context) (*dto.IntegrityReportResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAdmin(actor, "integrity report"); err != nil {
		return nil, err
	}

	dangling, err := u.integrityService.Check(ctx, tx)
	if err != nil {
		u.log.Warnf("Failed to run integrity check: %+v", err)
		return nil, err
	}
	if dangling == nil {
		dangling = []entity.DanglingReference{}
	}

	return &dto.IntegrityReportResponse{
		Dangling: dangling,
		Total:    len(dangling),
	}, nil
}

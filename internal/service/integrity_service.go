package service

import (
	"context"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
	"hospital-records/pkg/apperror"

	"github.com/sirupsen/logrus"
)

// IntegrityService resolves foreign keys before a mutation commits and
// reports references left dangling by deletes. Deletes never cascade.
type IntegrityService interface {
	RequireUser(ctx context.Context, tx *memory.Tx, field string, id int) (*entity.User, error)
	RequirePatient(ctx context.Context, tx *memory.Tx, field string, id int) (*entity.Patient, error)
	RequireDoctor(ctx context.Context, tx *memory.Tx, field string, id int) (*entity.Doctor, error)
	Check(ctx context.Context, tx *memory.Tx) ([]entity.DanglingReference, error)
}

type integrityService struct {
	log             *logrus.Logger
	userRepo        repository.UserRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	billRepo        repository.BillRepository
	labReportRepo   repository.LabReportRepository
}

func NewIntegrityService(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	billRepo repository.BillRepository,
	labReportRepo repository.LabReportRepository,
) IntegrityService {
	return &integrityService{
		log:             log,
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		billRepo:        billRepo,
		labReportRepo:   labReportRepo,
	}
}

func (s *integrityService) RequireUser(ctx context.Context, tx *memory.Tx, field string, id int) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, tx, id)
	if err != nil {
		s.log.Warnf("Failed to resolve %s: %+v", field, err)
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewDanglingReferenceError(field, id)
	}
	return user, nil
}

func (s *integrityService) RequirePatient(ctx context.Context, tx *memory.Tx, field string, id int) (*entity.Patient, error) {
	patient, err := s.patientRepo.FindByID(ctx, tx, id)
	if err != nil {
		s.log.Warnf("Failed to resolve %s: %+v", field, err)
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewDanglingReferenceError(field, id)
	}
	return patient, nil
}

func (s *integrityService) RequireDoctor(ctx context.Context, tx *memory.Tx, field string, id int) (*entity.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(ctx, tx, id)
	if err != nil {
		s.log.Warnf("Failed to resolve %s: %+v", field, err)
		return nil, err
	}
	if doctor == nil {
		return nil, apperror.NewDanglingReferenceError(field, id)
	}
	return doctor, nil
}

// Check walks every collection that carries a foreign key and returns the
// references whose target no longer exists, ordered by kind then record id.
func (s *integrityService) Check(ctx context.Context, tx *memory.Tx) ([]entity.DanglingReference, error) {
	users, err := s.userRepo.FindAll(ctx, tx)
	if err != nil {
		return nil, err
	}
	patients, err := s.patientRepo.FindAll(ctx, tx, nil)
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctorRepo.FindAll(ctx, tx, nil)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentRepo.FindAll(ctx, tx, nil)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.FindAll(ctx, tx, nil)
	if err != nil {
		return nil, err
	}
	reports, err := s.labReportRepo.FindAll(ctx, tx, nil)
	if err != nil {
		return nil, err
	}

	userIDs := make(map[int]bool, len(users))
	for _, u := range users {
		userIDs[u.ID] = true
	}
	patientIDs := make(map[int]bool, len(patients))
	for _, p := range patients {
		patientIDs[p.ID] = true
	}
	doctorIDs := make(map[int]bool, len(doctors))
	for _, d := range doctors {
		doctorIDs[d.ID] = true
	}

	var dangling []entity.DanglingReference
	add := func(kind string, recordID int, field string, missing int) {
		dangling = append(dangling, entity.DanglingReference{Kind: kind, RecordID: recordID, Field: field, MissingID: missing})
	}

	for _, p := range patients {
		if p.UserID != nil && !userIDs[*p.UserID] {
			add("patient", p.ID, "userId", *p.UserID)
		}
	}
	for _, d := range doctors {
		if d.UserID != nil && !userIDs[*d.UserID] {
			add("doctor", d.ID, "userId", *d.UserID)
		}
	}
	for _, a := range appointments {
		if !patientIDs[a.PatientID] {
			add("appointment", a.ID, "patientId", a.PatientID)
		}
		if !doctorIDs[a.DoctorID] {
			add("appointment", a.ID, "doctorId", a.DoctorID)
		}
	}
	for _, b := range bills {
		if !patientIDs[b.PatientID] {
			add("bill", b.ID, "patientId", b.PatientID)
		}
	}
	for _, r := range reports {
		if !patientIDs[r.PatientID] {
			add("lab_report", r.ID, "patientId", r.PatientID)
		}
	}

	if len(dangling) > 0 {
		s.log.Infof("Integrity check found %d dangling references", len(dangling))
	}
	return dangling, nil
}

package service

import (
	"context"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Seeder loads the bootstrap records every new session starts with.
type Seeder interface {
	Seed(ctx context.Context) error
}

type seeder struct {
	db            *memory.DB
	log           *logrus.Logger
	bcryptCost    int
	userRepo      repository.UserRepository
	patientRepo   repository.PatientRepository
	doctorRepo    repository.DoctorRepository
	medicineRepo  repository.MedicineRepository
	labReportRepo repository.LabReportRepository
}

func NewSeeder(
	db *memory.DB,
	log *logrus.Logger,
	bcryptCost int,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	medicineRepo repository.MedicineRepository,
	labReportRepo repository.LabReportRepository,
) Seeder {
	return &seeder{
		db:            db,
		log:           log,
		bcryptCost:    bcryptCost,
		userRepo:      userRepo,
		patientRepo:   patientRepo,
		doctorRepo:    doctorRepo,
		medicineRepo:  medicineRepo,
		labReportRepo: labReportRepo,
	}
}

type seedUser struct {
	user     entity.User
	password string
}

var seedUsers = []seedUser{
	{
		user:     entity.User{Username: "admin", Role: entity.RoleAdmin, Name: "Admin User", Email: "admin@hospital.com"},
		password: "admin123",
	},
	{
		user: entity.User{
			Username: "doctor1", Role: entity.RoleDoctor, Name: "Dr. Sarah Johnson", Email: "sarah@hospital.com",
			Specialization: "Cardiology", Schedule: "Mon-Fri, 9AM-5PM",
		},
		password: "doc123",
	},
	{
		user: entity.User{
			Username: "patient1", Role: entity.RolePatient, Name: "John Doe", Email: "john@example.com",
			Age: 35, Gender: "Male", Contact: "+1234567890", MedicalHistory: "Hypertension",
		},
		password: "pat123",
	},
}

func seedMedicines() []entity.Medicine {
	return []entity.Medicine{
		{Name: "Paracetamol 500mg", Category: "Pain Relief", Price: decimal.RequireFromString("15.50"), Quantity: 100, Expiry: "2025-12-31", Description: "Pain reliever and fever reducer", Manufacturer: "ABC Pharma"},
		{Name: "Amoxicillin 250mg", Category: "Antibiotic", Price: decimal.RequireFromString("45.00"), Quantity: 5, Expiry: "2024-06-15", Description: "Broad-spectrum antibiotic", Manufacturer: "XYZ Medical"},
		{Name: "Insulin Glargine", Category: "Diabetes", Price: decimal.RequireFromString("120.00"), Quantity: 25, Expiry: "2025-03-20", Description: "Long-acting insulin", Manufacturer: "MediCorp"},
		{Name: "Lisinopril 10mg", Category: "Cardiovascular", Price: decimal.RequireFromString("28.75"), Quantity: 0, Expiry: "2024-08-10", Description: "ACE inhibitor for blood pressure", Manufacturer: "HealthPlus"},
		{Name: "Metformin 500mg", Category: "Diabetes", Price: decimal.RequireFromString("22.30"), Quantity: 150, Expiry: "2026-01-15", Description: "Type 2 diabetes medication", Manufacturer: "PharmaLife"},
	}
}

func seedLabReports(patient *entity.Patient) []entity.LabReport {
	return []entity.LabReport{
		{
			PatientID: patient.ID, PatientName: patient.Name,
			TestType: "Blood Test", TestName: "Complete Blood Count (CBC)",
			TestDate: "2024-01-15", ResultDate: "2024-01-16",
			Status: entity.LabReportStatusCompleted, Priority: entity.LabPriorityNormal,
			Results: map[string]string{
				"Hemoglobin":        "14.2 g/dL",
				"White Blood Cells": "7,500 /μL",
				"Platelets":         "250,000 /μL",
				"Hematocrit":        "42%",
			},
			NormalRanges: map[string]string{
				"Hemoglobin":        "13.8-17.2 g/dL",
				"White Blood Cells": "4,500-11,000 /μL",
				"Platelets":         "150,000-450,000 /μL",
				"Hematocrit":        "40-52%",
			},
			DoctorNotes:   "All values within normal range. Patient is healthy.",
			LabTechnician: "Dr. Sarah Wilson",
		},
		{
			PatientID: patient.ID, PatientName: patient.Name,
			TestType: "Urine Test", TestName: "Urinalysis",
			TestDate: "2024-01-20", ResultDate: "2024-01-20",
			Status: entity.LabReportStatusCompleted, Priority: entity.LabPriorityHigh,
			Results: map[string]string{
				"Glucose":          "Positive",
				"Protein":          "Trace",
				"Blood":            "Negative",
				"Specific Gravity": "1.020",
			},
			NormalRanges: map[string]string{
				"Glucose":          "Negative",
				"Protein":          "Negative",
				"Blood":            "Negative",
				"Specific Gravity": "1.003-1.030",
			},
			DoctorNotes:   "Glucose and protein detected. Recommend follow-up with endocrinologist.",
			LabTechnician: "Dr. Michael Chen",
			IsAbnormal:    true,
		},
		{
			PatientID: patient.ID, PatientName: patient.Name,
			TestType: "Imaging", TestName: "Chest X-Ray",
			TestDate: "2024-01-25", ResultDate: "2024-01-25",
			Status: entity.LabReportStatusPending, Priority: entity.LabPriorityNormal,
			LabTechnician: "Dr. Lisa Rodriguez",
		},
	}
}

// Seed creates the admin, doctor1 and patient1 accounts with their linked
// records, five medicines and three lab reports, all in one transaction.
func (s *seeder) Seed(ctx context.Context) error {
	err := s.db.Transaction(func(tx *memory.Tx) error {
		users := make(map[entity.Role]*entity.User, len(seedUsers))
		for _, su := range seedUsers {
			hashed, err := bcrypt.GenerateFromPassword([]byte(su.password), s.bcryptCost)
			if err != nil {
				return err
			}
			user := su.user
			user.Password = string(hashed)
			if err := s.userRepo.Create(ctx, tx, &user); err != nil {
				return err
			}
			users[user.Role] = &user
		}

		doctorUser := users[entity.RoleDoctor]
		doctor := &entity.Doctor{
			Name:           doctorUser.Name,
			Specialization: doctorUser.Specialization,
			Schedule:       doctorUser.Schedule,
			Available:      true,
			UserID:         &doctorUser.ID,
		}
		if err := s.doctorRepo.Create(ctx, tx, doctor); err != nil {
			return err
		}

		patientUser := users[entity.RolePatient]
		patient := &entity.Patient{
			Name:           patientUser.Name,
			Age:            patientUser.Age,
			Gender:         patientUser.Gender,
			Contact:        patientUser.Contact,
			MedicalHistory: patientUser.MedicalHistory,
			UserID:         &patientUser.ID,
		}
		if err := s.patientRepo.Create(ctx, tx, patient); err != nil {
			return err
		}

		for _, m := range seedMedicines() {
			if err := s.medicineRepo.Create(ctx, tx, &m); err != nil {
				return err
			}
		}

		for _, r := range seedLabReports(patient) {
			if err := s.labReportRepo.Create(ctx, tx, &r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warnf("Failed to seed session data: %+v", err)
		return err
	}

	s.log.Info("Seeded session data")
	return nil
}

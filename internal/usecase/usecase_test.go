package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"hospital-records/config"
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/infrastructure/memory"
	"hospital-records/internal/repository"
	"hospital-records/internal/service"
	"hospital-records/pkg/jwt"
	"hospital-records/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	db           *memory.DB
	auth         AuthUsecase
	patients     PatientUsecase
	doctors      DoctorUsecase
	appointments AppointmentUsecase
	bills        BillUsecase
	medicines    MedicineUsecase
	labReports   LabReportUsecase
	dashboard    DashboardUsecase
	auditLogs    AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, config.IntegrityConfig{StrictLabReports: true})
}

// newTestEnvWith wires every usecase against a freshly seeded store.
func newTestEnvWith(t *testing.T, integrityConfig config.IntegrityConfig) *testEnv {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	db := memory.New()
	authConfig := config.AuthConfig{BcryptCost: bcrypt.MinCost, MinPasswordLength: 6}
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "hospital-records", AccessExpiry: time.Hour})
	v := validator.NewValidator()

	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	billRepo := repository.NewBillRepository()
	medicineRepo := repository.NewMedicineRepository()
	labReportRepo := repository.NewLabReportRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)
	integrityService := service.NewIntegrityService(log, userRepo, patientRepo, doctorRepo, appointmentRepo, billRepo, labReportRepo)
	actors := NewActorResolver(log, userRepo, patientRepo, doctorRepo)

	seeder := service.NewSeeder(db, log, bcrypt.MinCost, userRepo, patientRepo, doctorRepo, medicineRepo, labReportRepo)
	require.NoError(t, seeder.Seed(context.Background()))

	return &testEnv{
		db:           db,
		auth:         NewAuthUsecase(db, log, v, authConfig, userRepo, patientRepo, doctorRepo, integrityService, auditService, jwtService),
		patients:     NewPatientUsecase(db, log, v, actors, patientRepo, auditService),
		doctors:      NewDoctorUsecase(db, log, v, actors, doctorRepo, auditService),
		appointments: NewAppointmentUsecase(db, log, v, actors, appointmentRepo, patientRepo, doctorRepo, integrityService, auditService),
		bills:        NewBillUsecase(db, log, v, actors, billRepo, patientRepo, integrityService, auditService),
		medicines:    NewMedicineUsecase(db, log, v, actors, medicineRepo, auditService),
		labReports:   NewLabReportUsecase(db, log, v, integrityConfig, actors, labReportRepo, integrityService, auditService),
		dashboard:    NewDashboardUsecase(db, log, actors, patientRepo, doctorRepo, appointmentRepo, billRepo, integrityService),
		auditLogs:    NewAuditLogUsecase(db, log, actors, auditLogRepo),
	}
}

func (e *testEnv) login(t *testing.T, username, password string) context.Context {
	t.Helper()
	resp, err := e.auth.Login(context.Background(), &dto.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	ctx, err := e.auth.Authenticate(context.Background(), resp.Token)
	require.NoError(t, err)
	return ctx
}

func (e *testEnv) admin(t *testing.T) context.Context   { return e.login(t, "admin", "admin123") }
func (e *testEnv) doctor(t *testing.T) context.Context  { return e.login(t, "doctor1", "doc123") }
func (e *testEnv) patient(t *testing.T) context.Context { return e.login(t, "patient1", "pat123") }

// auditCount returns how many audit entries the store holds. adminCtx must
// come from an earlier login since logging in writes an entry itself.
func (e *testEnv) auditCount(t *testing.T, adminCtx context.Context) int {
	t.Helper()
	logs, err := e.auditLogs.List(adminCtx)
	require.NoError(t, err)
	return logs.Total
}

func (e *testEnv) addPatient(t *testing.T, name string) *dto.PatientResponse {
	t.Helper()
	p, err := e.patients.Create(e.admin(t), &dto.PatientRequest{Name: name, Age: "28", Gender: "Female", Contact: "+15550100"})
	require.NoError(t, err)
	return p
}

func (e *testEnv) book(t *testing.T, ctx context.Context, patientID, doctorID int) *dto.AppointmentResponse {
	t.Helper()
	a, err := e.appointments.Create(ctx, &dto.CreateAppointmentRequest{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      "2025-01-10",
		Time:      "09:00",
		Reason:    "Checkup",
	})
	require.NoError(t, err)
	return a
}

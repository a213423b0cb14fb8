package bootstrap

import (
	"context"
	"fmt"
	"os"

	"hospital-records/config"
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/infrastructure/memory"
	"hospital-records/internal/repository"
	"hospital-records/internal/service"
	"hospital-records/internal/usecase"
	"hospital-records/pkg/jwt"
	"hospital-records/pkg/validator"

	"github.com/sirupsen/logrus"
)

// App holds one session: the record store and every usecase bound to it.
// Dropping the App discards all state.
type App struct {
	Config *config.Config
	Log    *logrus.Logger
	DB     *memory.DB

	Auth         usecase.AuthUsecase
	Patients     usecase.PatientUsecase
	Doctors      usecase.DoctorUsecase
	Appointments usecase.AppointmentUsecase
	Bills        usecase.BillUsecase
	Medicines    usecase.MedicineUsecase
	LabReports   usecase.LabReportUsecase
	Dashboard    usecase.DashboardUsecase
	AuditLogs    usecase.AuditLogUsecase
}

// New loads configuration from configPath and builds a seeded session.
func New(configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg.Log)
	log.Info("Configuration loaded successfully")

	return NewWithConfig(context.Background(), cfg, log)
}

// NewWithConfig wires all layers against a fresh store and seeds it when
// seeding is enabled.
func NewWithConfig(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	db := memory.New()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	billRepo := repository.NewBillRepository()
	medicineRepo := repository.NewMedicineRepository()
	labReportRepo := repository.NewLabReportRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	integrityService := service.NewIntegrityService(log, userRepo, patientRepo, doctorRepo, appointmentRepo, billRepo, labReportRepo)
	actors := usecase.NewActorResolver(log, userRepo, patientRepo, doctorRepo)

	app := &App{
		Config: cfg,
		Log:    log,
		DB:     db,

		Auth:         usecase.NewAuthUsecase(db, log, customValidator, cfg.Auth, userRepo, patientRepo, doctorRepo, integrityService, auditService, jwtService),
		Patients:     usecase.NewPatientUsecase(db, log, customValidator, actors, patientRepo, auditService),
		Doctors:      usecase.NewDoctorUsecase(db, log, customValidator, actors, doctorRepo, auditService),
		Appointments: usecase.NewAppointmentUsecase(db, log, customValidator, actors, appointmentRepo, patientRepo, doctorRepo, integrityService, auditService),
		Bills:        usecase.NewBillUsecase(db, log, customValidator, actors, billRepo, patientRepo, integrityService, auditService),
		Medicines:    usecase.NewMedicineUsecase(db, log, customValidator, actors, medicineRepo, auditService),
		LabReports:   usecase.NewLabReportUsecase(db, log, customValidator, cfg.Integrity, actors, labReportRepo, integrityService, auditService),
		Dashboard:    usecase.NewDashboardUsecase(db, log, actors, patientRepo, doctorRepo, appointmentRepo, billRepo, integrityService),
		AuditLogs:    usecase.NewAuditLogUsecase(db, log, actors, auditLogRepo),
	}

	if cfg.Seed.Enabled {
		seeder := service.NewSeeder(db, log, cfg.Auth.BcryptCost, userRepo, patientRepo, doctorRepo, medicineRepo, labReportRepo)
		if err := seeder.Seed(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed session: %w", err)
		}
	}

	log.Infof("Session ready: app=%s env=%s", cfg.App.Name, cfg.App.Env)
	return app, nil
}

// Login authenticates and returns a context carrying the caller's principal.
func (app *App) Login(ctx context.Context, username, password string) (context.Context, error) {
	resp, err := app.Auth.Login(ctx, &dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	return app.Auth.Authenticate(ctx, resp.Token)
}

// setupLogger configures a logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hospital-records/config"
	"hospital-records/internal/converter"
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
	"hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
	"hospital-records/internal/policy"
	"hospital-records/internal/service"
	"hospital-records/pkg/apperror"
	"hospital-records/pkg/jwt"
	"hospital-records/pkg/validator"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	Authenticate(ctx context.Context, token string) (context.Context, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

type authUsecase struct {
	db               *memory.DB
	log              *logrus.Logger
	validator        *validator.CustomValidator
	authConfig       config.AuthConfig
	userRepo         repository.UserRepository
	patientRepo      repository.PatientRepository
	doctorRepo       repository.DoctorRepository
	integrityService service.IntegrityService
	auditService     service.AuditService
	jwtService       *jwt.JWTService

	// revoked holds logged-out token ids until the token would have expired.
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewAuthUsecase(
	db *memory.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	authConfig config.AuthConfig,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	integrityService service.IntegrityService,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		db:               db,
		log:              log,
		validator:        validator,
		authConfig:       authConfig,
		userRepo:         userRepo,
		patientRepo:      patientRepo,
		doctorRepo:       doctorRepo,
		integrityService: integrityService,
		auditService:     auditService,
		jwtService:       jwtService,
		revoked:          make(map[string]time.Time),
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByUsername(ctx, tx, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, tokenID, err := u.jwtService.GenerateSessionToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	response, err := u.userResponse(ctx, tx, user)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogEvent(ctx, tx, &user.ID, entity.AuditActionUserLogin, entity.JSON{"session_id": tokenID}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("User logged in: id=%d, role=%s", user.ID, user.Role)

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:      *response,
	}, nil
}

// Signup creates the account and its linked Doctor or Patient record in a
// single transaction.
func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := validateNewPassword(req.Password, req.ConfirmPassword, u.authConfig.MinPasswordLength); err != nil {
		return nil, err
	}

	role := entity.Role(req.Role)
	if !role.CanSignup() {
		return nil, apperror.NewValidationError("role", "role must be one of [doctor patient]")
	}

	var age int
	if role == entity.RolePatient {
		parsed, err := parseCount("age", req.Age, true)
		if err != nil {
			return nil, err
		}
		age = parsed
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByUsername(ctx, tx, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), u.authConfig.BcryptCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     role,
		Name:     req.Name,
		Email:    req.Email,
	}
	if role == entity.RoleDoctor {
		user.Specialization = req.Specialization
		user.Schedule = req.Schedule
	} else {
		user.Age = age
		user.Gender = req.Gender
		user.Contact = req.Contact
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if _, err := u.integrityService.RequireUser(ctx, tx, "userId", user.ID); err != nil {
		return nil, err
	}

	var (
		patient *entity.Patient
		doctor  *entity.Doctor
	)
	switch role {
	case entity.RoleDoctor:
		doctor = &entity.Doctor{
			Name:           user.Name,
			Specialization: user.Specialization,
			Schedule:       user.Schedule,
			Available:      true,
			UserID:         &user.ID,
		}
		if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
			u.log.Warnf("Failed to create doctor: %+v", err)
			return nil, err
		}
	case entity.RolePatient:
		patient = &entity.Patient{
			Name:    user.Name,
			Age:     user.Age,
			Gender:  user.Gender,
			Contact: user.Contact,
			UserID:  &user.ID,
		}
		if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
			u.log.Warnf("Failed to create patient: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID, converter.UserToResponse(user, patient, doctor)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("User registered: id=%d, role=%s", user.ID, user.Role)

	return converter.UserToResponse(user, patient, doctor), nil
}

// ResetPassword replaces the password of the named account. When an e-mail
// is supplied it must match the account's e-mail.
func (u *authUsecase) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := u.validator.Validate(req); err != nil {
		return err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByUsername(ctx, tx, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return err
	}
	if user == nil || (req.Email != "" && user.Email != req.Email) {
		return apperror.ErrUserNotFound
	}

	confirm := req.ConfirmPassword
	if confirm == "" {
		confirm = req.NewPassword
	}
	if err := validateNewPassword(req.NewPassword, confirm, u.authConfig.MinPasswordLength); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), u.authConfig.BcryptCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	user.Password = string(hashedPassword)
	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return err
	}

	if err := u.auditService.LogEvent(ctx, tx, &user.ID, entity.AuditActionPasswordReset, nil); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Password reset: user=%d", user.ID)
	return nil
}

// Authenticate validates a session token and returns a context carrying
// the caller's principal.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (context.Context, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnauthorized, err)
	}
	if u.isRevoked(claims.TokenID) {
		return nil, fmt.Errorf("%w: session has been logged out", apperror.ErrUnauthorized)
	}

	tx := u.db.BeginRead()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: account no longer exists", apperror.ErrUnauthorized)
	}

	return policy.NewContext(ctx, policy.Principal{
		UserID:  user.ID,
		Role:    user.Role,
		TokenID: claims.TokenID,
	}), nil
}

func (u *authUsecase) Logout(ctx context.Context, token string) error {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrUnauthorized, err)
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	if err := u.auditService.LogEvent(ctx, tx, &claims.UserID, entity.AuditActionUserLogout, entity.JSON{"session_id": claims.TokenID}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	expiresAt := time.Now().Add(u.jwtService.GetAccessExpiry())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	u.revoke(claims.TokenID, expiresAt)

	u.log.Infof("User logged out: id=%d", claims.UserID)
	return nil
}

func (u *authUsecase) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	principal, ok := policy.FromContext(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	tx := u.db.BeginRead()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}

	return u.userResponse(ctx, tx, user)
}

func (u *authUsecase) userResponse(ctx context.Context, tx *memory.Tx, user *entity.User) (*dto.UserResponse, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, tx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find linked patient: %+v", err)
		return nil, err
	}
	doctor, err := u.doctorRepo.FindByUserID(ctx, tx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find linked doctor: %+v", err)
		return nil, err
	}
	return converter.UserToResponse(user, patient, doctor), nil
}

func (u *authUsecase) revoke(tokenID string, expiresAt time.Time) {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := time.Now()
	for id, exp := range u.revoked {
		if now.After(exp) {
			delete(u.revoked, id)
		}
	}
	u.revoked[tokenID] = expiresAt
}

func (u *authUsecase) isRevoked(tokenID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.revoked[tokenID]
	return ok
}

package usecase

import (
	"context"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
	"hospital-records/internal/policy"
	"hospital-records/pkg/apperror"

	"github.com/sirupsen/logrus"
)

// ActorResolver turns the principal carried on a context into a
// policy.Actor, looking up the caller's linked patient or doctor record.
type ActorResolver struct {
	log         *logrus.Logger
	userRepo    repository.UserRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
}

func NewActorResolver(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
) *ActorResolver {
	return &ActorResolver{
		log:         log,
		userRepo:    userRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
	}
}

// Resolve returns ErrUnauthorized when ctx has no principal or the user no
// longer exists. The role comes from the stored user, not the token.
func (r *ActorResolver) Resolve(ctx context.Context, tx *memory.Tx) (policy.Actor, error) {
	principal, ok := policy.FromContext(ctx)
	if !ok {
		return policy.Actor{}, apperror.ErrUnauthorized
	}

	user, err := r.userRepo.FindByID(ctx, tx, principal.UserID)
	if err != nil {
		r.log.Warnf("Failed to find user %d: %+v", principal.UserID, err)
		return policy.Actor{}, err
	}
	if user == nil {
		return policy.Actor{}, apperror.ErrUnauthorized
	}

	actor := policy.Actor{UserID: user.ID, Role: user.Role}
	switch user.Role {
	case entity.RolePatient:
		patient, err := r.patientRepo.FindByUserID(ctx, tx, user.ID)
		if err != nil {
			r.log.Warnf("Failed to find linked patient for user %d: %+v", user.ID, err)
			return policy.Actor{}, err
		}
		if patient != nil {
			actor.PatientID = patient.ID
		}
	case entity.RoleDoctor:
		doctor, err := r.doctorRepo.FindByUserID(ctx, tx, user.ID)
		if err != nil {
			r.log.Warnf("Failed to find linked doctor for user %d: %+v", user.ID, err)
			return policy.Actor{}, err
		}
		if doctor != nil {
			actor.DoctorID = doctor.ID
		}
	}

	return actor, nil
}

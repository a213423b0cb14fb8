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

type MedicineUsecase interface {
	List(ctx context.Context, filter *entity.MedicineFilter) ([]dto.MedicineResponse, error)
	Get(ctx context.Context, id int) (*dto.MedicineResponse, error)
	Create(ctx context.Context, req *dto.MedicineRequest) (*dto.MedicineResponse, error)
	Update(ctx context.Context, id int, req *dto.MedicineRequest) (*dto.MedicineResponse, error)
	Delete(ctx context.Context, id int) error
}

type medicineUsecase struct {
	db           *memory.DB
	log          *logrus.Logger
	validator    *validator.CustomValidator
	actors       *ActorResolver
	medicineRepo repository.MedicineRepository
	auditService service.AuditService
}

func NewMedicineUsecase(
	db *memory.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	actors *ActorResolver,
	medicineRepo repository.MedicineRepository,
	auditService service.AuditService,
) MedicineUsecase {
	return &medicineUsecase{
		db:           db,
		log:          log,
		validator:    validator,
		actors:       actors,
		medicineRepo: medicineRepo,
		auditService: auditService,
	}
}

func (u *medicineUsecase) List(ctx context.Context, filter *entity.MedicineFilter) ([]dto.MedicineResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMedicine(actor, policy.OpRead); err != nil {
		return nil, err
	}

	medicines, err := u.medicineRepo.FindAll(ctx, tx, filter)
	if err != nil {
		u.log.Warnf("Failed to find all medicines: %+v", err)
		return nil, err
	}

	return converter.MedicinesToResponses(medicines), nil
}

func (u *medicineUsecase) Get(ctx context.Context, id int) (*dto.MedicineResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMedicine(actor, policy.OpRead); err != nil {
		return nil, err
	}

	medicine, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) Create(ctx context.Context, req *dto.MedicineRequest) (*dto.MedicineResponse, error) {
	medicine, err := u.fromRequest(req)
	if err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMedicine(actor, policy.OpCreate); err != nil {
		return nil, err
	}

	if err := u.medicineRepo.Create(ctx, tx, medicine); err != nil {
		u.log.Warnf("Failed to create medicine: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.UserID, entity.AuditActionMedicineCreate, "medicine", medicine.ID, *medicine); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Medicine created: id=%d, stock=%s", medicine.ID, medicine.StockStatus())
	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) Update(ctx context.Context, id int, req *dto.MedicineRequest) (*dto.MedicineResponse, error) {
	updated, err := u.fromRequest(req)
	if err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMedicine(actor, policy.OpUpdate); err != nil {
		return nil, err
	}

	medicine, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	old := *medicine
	updated.ID = medicine.ID
	if err := u.medicineRepo.Update(ctx, tx, updated); err != nil {
		u.log.Warnf("Failed to update medicine %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionMedicineUpdate, "medicine", id, old, *updated); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicineToResponse(updated), nil
}

func (u *medicineUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeMedicine(actor, policy.OpDelete); err != nil {
		return err
	}

	medicine, err := u.find(ctx, tx, id)
	if err != nil {
		return err
	}

	if _, err := u.medicineRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete medicine %d: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.UserID, entity.AuditActionMedicineDelete, "medicine", id, *medicine); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Medicine deleted: id=%d", id)
	return nil
}

func (u *medicineUsecase) fromRequest(req *dto.MedicineRequest) (*entity.Medicine, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}
	price, err := parseAmount("price", req.Price)
	if err != nil {
		return nil, err
	}
	quantity, err := parseCount("quantity", req.Quantity, false)
	if err != nil {
		return nil, err
	}

	return &entity.Medicine{
		Name:         req.Name,
		Category:     req.Category,
		Price:        price,
		Quantity:     quantity,
		Expiry:       req.Expiry,
		Description:  req.Description,
		Manufacturer: req.Manufacturer,
	}, nil
}

func (u *medicineUsecase) find(ctx context.Context, tx *memory.Tx, id int) (*entity.Medicine, error) {
	medicine, err := u.medicineRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine %d: %+v", id, err)
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NewNotFoundError("medicine", id)
	}
	return medicine, nil
}

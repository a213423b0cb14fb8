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

type BillUsecase interface {
	List(ctx context.Context, filter *entity.BillFilter) ([]dto.BillResponse, error)
	Get(ctx context.Context, id int) (*dto.BillResponse, error)
	Create(ctx context.Context, req *dto.CreateBillRequest) (*dto.BillResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateBillRequest) (*dto.BillResponse, error)
	Delete(ctx context.Context, id int) error
	MarkPaid(ctx context.Context, id int) (*dto.BillResponse, error)
	Pay(ctx context.Context, id int) (*dto.BillResponse, error)
	Summary(ctx context.Context) (*dto.BillSummaryResponse, error)
}

type billUsecase struct {
	db               *memory.DB
	log              *logrus.Logger
	validator        *validator.CustomValidator
	actors           *ActorResolver
	billRepo         repository.BillRepository
	patientRepo      repository.PatientRepository
	integrityService service.IntegrityService
	auditService     service.AuditService
}

func NewBillUsecase(
	db *memory.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	actors *ActorResolver,
	billRepo repository.BillRepository,
	patientRepo repository.PatientRepository,
	integrityService service.IntegrityService,
	auditService service.AuditService,
) BillUsecase {
	return &billUsecase{
		db:               db,
		log:              log,
		validator:        validator,
		actors:           actors,
		billRepo:         billRepo,
		patientRepo:      patientRepo,
		integrityService: integrityService,
		auditService:     auditService,
	}
}

func (u *billUsecase) List(ctx context.Context, filter *entity.BillFilter) ([]dto.BillResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	bills, err := u.visibleBills(ctx, tx, actor, filter)
	if err != nil {
		return nil, err
	}

	names, err := loadNames(ctx, tx, u.patientRepo, nil)
	if err != nil {
		u.log.Warnf("Failed to load names: %+v", err)
		return nil, err
	}

	return converter.BillsToResponses(bills, names), nil
}

func (u *billUsecase) Get(ctx context.Context, id int) (*dto.BillResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	bill, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeBill(actor, policy.OpRead, bill); err != nil {
		return nil, err
	}

	return u.response(ctx, tx, bill)
}

// Create issues a bill. Date defaults to today and status to pending; any
// valid status, overdue included, may be set here.
func (u *billUsecase) Create(ctx context.Context, req *dto.CreateBillRequest) (*dto.BillResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeBill(actor, policy.OpCreate, nil); err != nil {
		return nil, err
	}

	if _, err := u.integrityService.RequirePatient(ctx, tx, "patientId", req.PatientID); err != nil {
		return nil, err
	}

	bill := &entity.Bill{
		PatientID:   req.PatientID,
		Description: req.Description,
		Amount:      amount,
		Date:        req.Date,
		Status:      entity.BillStatus(req.Status),
	}
	if bill.Date == "" {
		bill.Date = today()
	}
	if bill.Status == "" {
		bill.Status = entity.BillStatusPending
	}

	if err := u.billRepo.Create(ctx, tx, bill); err != nil {
		u.log.Warnf("Failed to create bill: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.UserID, entity.AuditActionBillCreate, "bill", bill.ID, *bill); err != nil {
		return nil, err
	}

	response, err := u.response(ctx, tx, bill)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Bill created: id=%d, patient=%d, amount=%s", bill.ID, bill.PatientID, bill.Amount)
	return response, nil
}

func (u *billUsecase) Update(ctx context.Context, id int, req *dto.UpdateBillRequest) (*dto.BillResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}

	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	bill, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeBill(actor, policy.OpUpdate, bill); err != nil {
		return nil, err
	}
	if _, err := u.integrityService.RequirePatient(ctx, tx, "patientId", req.PatientID); err != nil {
		return nil, err
	}

	old := *bill
	bill.PatientID = req.PatientID
	bill.Description = req.Description
	bill.Amount = amount
	bill.Date = req.Date

	return u.save(ctx, tx, actor, entity.AuditActionBillUpdate, old, bill)
}

func (u *billUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return err
	}

	bill, err := u.find(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeBill(actor, policy.OpDelete, bill); err != nil {
		return err
	}

	if _, err := u.billRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete bill %d: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.UserID, entity.AuditActionBillDelete, "bill", id, *bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Bill deleted: id=%d", id)
	return nil
}

// MarkPaid settles a pending bill. Calling it on a paid bill changes
// nothing; an overdue bill cannot be settled.
func (u *billUsecase) MarkPaid(ctx context.Context, id int) (*dto.BillResponse, error) {
	tx := u.db.Begin()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMarkPaid(actor); err != nil {
		return nil, err
	}

	bill, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	old := *bill
	changed, err := bill.MarkPaid()
	if err != nil {
		return nil, err
	}
	if !changed {
		return u.response(ctx, tx, bill)
	}

	return u.save(ctx, tx, actor, entity.AuditActionBillPaid, old, bill)
}

// Pay is the patient-facing pay action. It checks ownership and returns
// the bill unchanged; settlement happens through MarkPaid.
func (u *billUsecase) Pay(ctx context.Context, id int) (*dto.BillResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	bill, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizePay(actor, bill); err != nil {
		return nil, err
	}

	u.log.Infof("Pay requested: bill=%d, patient=%d", bill.ID, bill.PatientID)
	return u.response(ctx, tx, bill)
}

// Summary totals paid, pending and overdue amounts over the bills the
// caller can see.
func (u *billUsecase) Summary(ctx context.Context) (*dto.BillSummaryResponse, error) {
	tx := u.db.BeginRead()
	defer tx.Rollback()

	actor, err := u.actors.Resolve(ctx, tx)
	if err != nil {
		return nil, err
	}

	bills, err := u.visibleBills(ctx, tx, actor, nil)
	if err != nil {
		return nil, err
	}

	return &dto.BillSummaryResponse{
		Revenue:       entity.SumAmounts(bills, entity.BillStatusPaid),
		PendingAmount: entity.SumAmounts(bills, entity.BillStatusPending),
		OverdueAmount: entity.SumAmounts(bills, entity.BillStatusOverdue),
		Total:         len(bills),
	}, nil
}

func (u *billUsecase) visibleBills(ctx context.Context, tx *memory.Tx, actor policy.Actor, filter *entity.BillFilter) ([]entity.Bill, error) {
	if err := policy.AuthorizeBill(actor, policy.OpRead, nil); err != nil {
		return nil, err
	}

	var (
		bills []entity.Bill
		err   error
	)
	switch {
	case actor.IsAdmin():
		bills, err = u.billRepo.FindAll(ctx, tx, filter)
	case actor.PatientID != 0:
		bills, err = u.billRepo.FindByPatientID(ctx, tx, actor.PatientID, filter)
	}
	if err != nil {
		u.log.Warnf("Failed to find bills: %+v", err)
		return nil, err
	}
	return bills, nil
}

func (u *billUsecase) save(ctx context.Context, tx *memory.Tx, actor policy.Actor, action string, old entity.Bill, bill *entity.Bill) (*dto.BillResponse, error) {
	if err := u.billRepo.Update(ctx, tx, bill); err != nil {
		u.log.Warnf("Failed to update bill %d: %+v", bill.ID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, action, "bill", bill.ID, old, *bill); err != nil {
		return nil, err
	}

	response, err := u.response(ctx, tx, bill)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Bill updated: id=%d, status=%s", bill.ID, bill.Status)
	return response, nil
}

func (u *billUsecase) find(ctx context.Context, tx *memory.Tx, id int) (*entity.Bill, error) {
	bill, err := u.billRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find bill %d: %+v", id, err)
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("bill", id)
	}
	return bill, nil
}

func (u *billUsecase) response(ctx context.Context, tx *memory.Tx, bill *entity.Bill) (*dto.BillResponse, error) {
	names, err := loadNames(ctx, tx, u.patientRepo, nil)
	if err != nil {
		u.log.Warnf("Failed to load names: %+v", err)
		return nil, err
	}
	return converter.BillToResponse(bill, names), nil
}

package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
)

type labReportRepository struct{}

func NewLabReportRepository() domainRepo.LabReportRepository {
	return &labReportRepository{}
}

func (r *labReportRepository) Create(ctx context.Context, tx *memory.Tx, report *entity.LabReport) error {
	report.ID = tx.NextID(labReportsTable)
	return tx.Insert(labReportsTable, report.ID, report.Clone())
}

func (r *labReportRepository) FindByID(ctx context.Context, tx *memory.Tx, id int) (*entity.LabReport, error) {
	report, ok := memory.Find[entity.LabReport](tx, labReportsTable, id)
	if !ok {
		return nil, nil
	}
	report = report.Clone()
	return &report, nil
}

func (r *labReportRepository) FindAll(ctx context.Context, tx *memory.Tx, filter *entity.LabReportFilter) ([]entity.LabReport, error) {
	return r.scan(tx, filter, nil), nil
}

func (r *labReportRepository) FindByPatientID(ctx context.Context, tx *memory.Tx, patientID int, filter *entity.LabReportFilter) ([]entity.LabReport, error) {
	return r.scan(tx, filter, func(lr entity.LabReport) bool { return lr.PatientID == patientID }), nil
}

func (r *labReportRepository) Update(ctx context.Context, tx *memory.Tx, report *entity.LabReport) error {
	return tx.Put(labReportsTable, report.ID, report.Clone())
}

func (r *labReportRepository) Delete(ctx context.Context, tx *memory.Tx, id int) (int64, error) {
	return tx.Delete(labReportsTable, id)
}

func (r *labReportRepository) scan(tx *memory.Tx, filter *entity.LabReportFilter, scope func(entity.LabReport) bool) []entity.LabReport {
	reports := memory.Scan(tx, labReportsTable, func(lr entity.LabReport) bool {
		if scope != nil && !scope(lr) {
			return false
		}
		if filter == nil {
			return true
		}
		if filter.Status != "" && lr.Status != filter.Status {
			return false
		}
		if filter.TestType != "" && lr.TestType != filter.TestType {
			return false
		}
		return containsFold(filter.Search, lr.PatientName, lr.TestName, lr.TestType)
	})
	for i := range reports {
		reports[i] = reports[i].Clone()
	}
	return reports
}

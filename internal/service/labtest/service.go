package labtest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-api/internal/model"
	"github.com/medicore/hospital-api/internal/repository"
	"github.com/medicore/hospital-api/internal/repository/postgres"
	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

// MaxReportSize caps uploaded report files at 5MB
const MaxReportSize = 5 * 1024 * 1024

// ReportUpload is a pending report file upload
type ReportUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// LabTestService manages lab test requests and results
type LabTestService interface {
	RequestTest(ctx context.Context, doctorID int64, req *model.CreateLabTestRequest) (*model.LabTest, error)
	GetTest(ctx context.Context, id int64) (*model.LabTest, error)
	UpdateResult(ctx context.Context, id int64, req *model.UpdateLabResultRequest, report *ReportUpload) (*model.LabTest, error)
	ReportPath(test *model.LabTest) (string, error)
	ListTests(ctx context.Context, filter *model.LabTestFilter) ([]*model.LabTestDetail, error)
}

type Service struct {
	repo        repository.LabTestRepository
	patientRepo repository.PatientRepository
	uploadDir   string
	logger      zerolog.Logger
}

func NewService(repo repository.LabTestRepository, patientRepo repository.PatientRepository, uploadDir string, logger zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

func (s *Service) RequestTest(ctx context.Context, doctorID int64, req *model.CreateLabTestRequest) (*model.LabTest, error) {
	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load patient: %w", err))
	}

	test := &model.LabTest{
		PatientID:     req.PatientID,
		DoctorID:      doctorID,
		TestName:      req.TestName,
		RequestedDate: time.Now(),
		Status:        model.LabStatusRequested,
	}

	if err := s.repo.Create(ctx, test); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create lab test: %w", err))
	}

	s.logger.Info().
		Int64("lab_test_id", test.ID).
		Int64("patient_id", test.PatientID).
		Str("test", test.TestName).
		Msg("lab test requested")
	return test, nil
}

func (s *Service) GetTest(ctx context.Context, id int64) (*model.LabTest, error) {
	test, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("lab test")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load lab test: %w", err))
	}
	return test, nil
}

// UpdateResult advances a test through its lifecycle. Status moves
// forward only. Completing a test stamps the result date. A report PDF
// may accompany the update; on any failure the previously stored report
// is kept.
func (s *Service) UpdateResult(ctx context.Context, id int64, req *model.UpdateLabResultRequest, report *ReportUpload) (*model.LabTest, error) {
	test, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, apperrors.NotFound("lab test")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to load lab test: %w", err))
	}

	if !model.ValidLabStatus(req.Status) {
		return nil, apperrors.Validation("unknown lab test status")
	}
	if model.LabStatusRegresses(test.Status, req.Status) {
		return nil, apperrors.Validation(
			fmt.Sprintf("status cannot move from %s back to %s", test.Status, req.Status))
	}

	var savedFile string
	if report != nil {
		savedFile, err = s.saveReport(id, report)
		if err != nil {
			return nil, err
		}
	}

	oldFile := test.ReportFile
	test.Status = req.Status
	test.Result = req.Result
	if savedFile != "" {
		test.ReportFile = savedFile
	}
	if req.Status == model.LabStatusCompleted && test.ResultDate == nil {
		now := time.Now()
		test.ResultDate = &now
	}

	if err := s.repo.UpdateResult(ctx, test); err != nil {
		if savedFile != "" {
			os.Remove(filepath.Join(s.uploadDir, savedFile))
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to update lab test: %w", err))
	}

	if savedFile != "" && oldFile != "" && oldFile != savedFile {
		if err := os.Remove(filepath.Join(s.uploadDir, oldFile)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("file", oldFile).Msg("failed to remove replaced report file")
		}
	}

	s.logger.Info().Int64("lab_test_id", id).Str("status", test.Status).Msg("lab result updated")
	return test, nil
}

func (s *Service) saveReport(testID int64, report *ReportUpload) (string, error) {
	if report.Size > MaxReportSize {
		return "", apperrors.Validation("report file exceeds the 5MB limit")
	}
	if !strings.EqualFold(filepath.Ext(report.Filename), ".pdf") {
		return "", apperrors.Validation("report file must be a PDF")
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", apperrors.Internal(fmt.Errorf("failed to create upload dir: %w", err))
	}

	name := fmt.Sprintf("report_%d_%d.pdf", testID, time.Now().Unix())
	dst, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("failed to create report file: %w", err))
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(report.Content, MaxReportSize)); err != nil {
		os.Remove(filepath.Join(s.uploadDir, name))
		return "", apperrors.Internal(fmt.Errorf("failed to write report file: %w", err))
	}
	return name, nil
}

// ReportPath resolves the stored report file for download.
func (s *Service) ReportPath(test *model.LabTest) (string, error) {
	if test.ReportFile == "" {
		return "", apperrors.NotFound("report file")
	}
	path := filepath.Join(s.uploadDir, filepath.Base(test.ReportFile))
	if _, err := os.Stat(path); err != nil {
		return "", apperrors.NotFound("report file")
	}
	return path, nil
}

func (s *Service) ListTests(ctx context.Context, filter *model.LabTestFilter) ([]*model.LabTestDetail, error) {
	tests, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list lab tests: %w", err))
	}
	return tests, nil
}

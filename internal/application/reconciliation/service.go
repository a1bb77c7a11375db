package reconciliation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	recon "github.com/salesops/backend/internal/domain/reconciliation"
	"github.com/salesops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TextExtractor converts an uploaded binary document into positional plain
// text that preserves the original tabular column alignment. The conversion
// itself is an external collaborator; this core only consumes its output.
type TextExtractor interface {
	Extract(ctx context.Context, content []byte, mediaType string) (string, error)
}

// StatementArchive stores the uploaded source document for later audit.
type StatementArchive interface {
	Store(ctx context.Context, key string, content []byte, contentType string) error
}

// acceptedMediaTypes are the upload content types the service parses.
var acceptedMediaTypes = map[string]bool{
	"application/pdf": true,
	"text/plain":      true,
}

// Service runs statement reconciliations: it validates the upload, extracts
// the text, parses it, matches it against the ledger and persists the
// resulting run, replacing any prior run for the same period.
type Service struct {
	ledger            recon.Ledger
	runs              recon.RunRepository
	extractor         TextExtractor
	archive           StatementArchive
	salesMatcher      *recon.SalesMatcher
	commissionMatcher *recon.CommissionMatcher
	logger            *zap.Logger
}

// ServiceOption is a functional option for configuring Service
type ServiceOption func(*Service)

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger.Named("reconciliation")
	}
}

// WithStatementArchive enables archiving of uploaded source documents
func WithStatementArchive(archive StatementArchive) ServiceOption {
	return func(s *Service) {
		s.archive = archive
	}
}

// WithSalesMatcher injects a custom sales matcher (e.g. custom tolerance)
func WithSalesMatcher(m *recon.SalesMatcher) ServiceOption {
	return func(s *Service) {
		s.salesMatcher = m
	}
}

// WithCommissionMatcher injects a custom commission matcher
func WithCommissionMatcher(m *recon.CommissionMatcher) ServiceOption {
	return func(s *Service) {
		s.commissionMatcher = m
	}
}

// NewService creates a new reconciliation Service
func NewService(
	ledger recon.Ledger,
	runs recon.RunRepository,
	extractor TextExtractor,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		ledger:            ledger,
		runs:              runs,
		extractor:         extractor,
		salesMatcher:      recon.NewSalesMatcher(ledger),
		commissionMatcher: recon.NewCommissionMatcher(ledger),
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UploadRequest carries one uploaded statement document and its reporting
// period.
type UploadRequest struct {
	Month     int
	Year      int
	FileName  string
	MediaType string
	Content   []byte
}

// validate rejects structurally bad input before any parsing begins.
func (r *UploadRequest) validate() (shared.Period, error) {
	if len(r.Content) == 0 {
		return shared.Period{}, shared.NewDomainError("INVALID_INPUT", "Statement document is required")
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(r.MediaType, ";")[0]))
	if mediaType != "" && !acceptedMediaTypes[mediaType] {
		return shared.Period{}, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Unsupported document media type %q", mediaType))
	}
	return shared.NewPeriod(r.Month, r.Year)
}

// ReconcileSales reconciles a distributor gross-sales report against the
// period's ledger sales. It always returns a run on success, even when every
// line is a discrepancy; only structural failures are errors.
func (s *Service) ReconcileSales(ctx context.Context, req UploadRequest) (*recon.ReconciliationRun, error) {
	period, err := req.validate()
	if err != nil {
		return nil, err
	}

	text, err := s.extractText(ctx, req, recon.StatementTypeSales, period)
	if err != nil {
		return nil, err
	}

	stmt := recon.ParseSalesStatement(text)
	result, err := s.salesMatcher.Match(ctx, period, stmt)
	if err != nil {
		return nil, err
	}

	run := recon.NewReconciliationRun(recon.StatementTypeSales, period, req.FileName, stmt.Header, result)
	return s.persist(ctx, run)
}

// ReconcileCommissions reconciles a commission-settlement report against the
// ledger's invoices and installments.
func (s *Service) ReconcileCommissions(ctx context.Context, req UploadRequest) (*recon.ReconciliationRun, error) {
	period, err := req.validate()
	if err != nil {
		return nil, err
	}

	text, err := s.extractText(ctx, req, recon.StatementTypeCommission, period)
	if err != nil {
		return nil, err
	}

	stmt := recon.ParseCommissionStatement(text)
	result, err := s.commissionMatcher.Match(ctx, stmt)
	if err != nil {
		return nil, err
	}

	run := recon.NewReconciliationRun(recon.StatementTypeCommission, period, req.FileName, stmt.Header, result)
	return s.persist(ctx, run)
}

func (s *Service) extractText(ctx context.Context, req UploadRequest, t recon.StatementType, period shared.Period) (string, error) {
	text, err := s.extractor.Extract(ctx, req.Content, req.MediaType)
	if err != nil {
		return "", shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Document could not be converted to text: %v", err))
	}

	// Archiving is best-effort: a storage hiccup must not block the
	// reconciliation itself.
	if s.archive != nil {
		key := fmt.Sprintf("statements/%d/%02d/%s/%s",
			period.Year, period.Month, strings.ToLower(t.String()), req.FileName)
		if err := s.archive.Store(ctx, key, req.Content, req.MediaType); err != nil {
			s.logger.Warn("failed to archive statement document",
				zap.String("key", key), zap.Error(err))
		}
	}

	return text, nil
}

func (s *Service) persist(ctx context.Context, run *recon.ReconciliationRun) (*recon.ReconciliationRun, error) {
	if err := run.Validate(); err != nil {
		return nil, err
	}
	if err := s.runs.ReplaceForPeriod(ctx, run); err != nil {
		return nil, fmt.Errorf("persisting reconciliation run: %w", err)
	}

	s.logger.Info("reconciliation run persisted",
		zap.String("type", run.Type.String()),
		zap.Int("month", run.Period.Month),
		zap.Int("year", run.Period.Year),
		zap.Int("total_items", run.TotalItems),
		zap.Int("problem_items", run.ProblemItems),
		zap.String("state", run.State.String()),
	)
	return run, nil
}

// GetRun loads one run with its line items.
func (s *Service) GetRun(ctx context.Context, id uuid.UUID) (*recon.ReconciliationRun, error) {
	return s.runs.FindByID(ctx, id)
}

// GetRunForPeriod loads the run for a (type, month, year) key.
func (s *Service) GetRunForPeriod(ctx context.Context, t recon.StatementType, month, year int) (*recon.ReconciliationRun, error) {
	if !t.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown statement type")
	}
	period, err := shared.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}
	return s.runs.FindForPeriod(ctx, t, period)
}

// ListRuns returns run summaries matching the filter.
func (s *Service) ListRuns(ctx context.Context, filter recon.RunFilter) ([]recon.ReconciliationRun, int64, error) {
	return s.runs.List(ctx, filter)
}

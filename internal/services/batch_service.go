package services

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/storage"
	"gorm.io/datatypes"
)

const csvUploadSource = "csv_upload"

type BatchService struct {
	store      storage.Storage
	classifier Classifier
	notifier   ChangeNotifier
}

func NewBatchService(store storage.Storage, classifier Classifier, notifier ChangeNotifier) *BatchService {
	return &BatchService{
		store:      store,
		classifier: classifier,
		notifier:   notifierOrNop(notifier),
	}
}

// IngestCSV classifies an uploaded CSV, stores every classified row with its
// analysis and records a batch summary built from the classifier's totals.
// Rows that fail to store are skipped and keep no ids in the result.
func (s *BatchService) IngestCSV(filename string, data []byte) (*dto.BatchResult, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil, ErrInvalidFile
	}

	analysis, err := s.classifier.ClassifyBatch(filename, data)
	if err != nil {
		slog.Error("batch classification failed", "batch", filename, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	result := &dto.BatchResult{
		TotalComplaints:           analysis.TotalComplaints,
		ComplaintVolumeByCategory: CategoryTaxonomy.Merge(analysis.ComplaintVolumeByCategory),
		SentimentOverview:         SentimentTaxonomy.Merge(analysis.SentimentOverview),
		UrgencyDistribution:       UrgencyTaxonomy.Merge(analysis.UrgencyDistribution),
		WeeklySummary:             analysis.WeeklySummary,
		TopRecurringIssues:        analysis.TopRecurringIssues,
	}
	if result.TopRecurringIssues == nil {
		result.TopRecurringIssues = []string{}
	}

	storedIDs := make([]uint, 0, len(analysis.ProcessedComplaints))
	if analysis.ProcessedComplaints != nil {
		result.ProcessedComplaints = make([]dto.BatchComplaint, len(analysis.ProcessedComplaints))
	}
	for i, row := range analysis.ProcessedComplaints {
		result.ProcessedComplaints[i].ClassifiedComplaint = row

		grievanceID, analysisID, err := s.storeRow(filename, row)
		if err != nil {
			slog.Error("failed to store batch row", "batch", filename, "row", i+1, "error", err)
			continue
		}
		result.ProcessedComplaints[i].ID = &grievanceID
		result.ProcessedComplaints[i].AnalysisID = analysisID
		storedIDs = append(storedIDs, grievanceID)
	}
	result.StoredGrievances = len(storedIDs)

	summary := &models.BatchSummary{
		BatchName:                 &filename,
		TotalComplaints:           result.TotalComplaints,
		ComplaintVolumeByCategory: datatypes.NewJSONType(result.ComplaintVolumeByCategory),
		SentimentOverview:         datatypes.NewJSONType(result.SentimentOverview),
		UrgencyDistribution:       datatypes.NewJSONType(result.UrgencyDistribution),
		WeeklySummary:             result.WeeklySummary,
		TopRecurringIssues:        datatypes.NewJSONSlice(result.TopRecurringIssues),
		GrievanceIDs:              datatypes.NewJSONSlice(storedIDs),
	}
	if err := s.store.InsertBatchSummary(summary); err != nil {
		slog.Error("failed to store batch summary", "batch", filename, "error", err)
	} else {
		result.BatchID = &summary.ID
	}

	slog.Info("batch ingested",
		"batch", filename,
		"total_complaints", result.TotalComplaints,
		"stored_grievances", result.StoredGrievances,
	)
	s.notifier.GrievancesChanged("batch", storedIDs...)
	return result, nil
}

// storeRow inserts one classified row. The analysis id is nil when only the
// grievance could be stored.
func (s *BatchService) storeRow(filename string, row dto.ClassifiedComplaint) (uint, *uint, error) {
	text := strings.TrimSpace(row.RawText)
	if text == "" {
		return 0, nil, ErrValidation
	}

	source := csvUploadSource
	name := filename
	g := &models.Grievance{
		RawText:     text,
		SubmittedAt: time.Now(),
		UserInfo:    &models.UserInfo{Source: &source, Filename: &name},
	}
	if err := s.store.InsertGrievance(g); err != nil {
		return 0, nil, err
	}

	verdict := row.Classification
	a := newAnalysis(g.ID, text, &verdict)
	if err := s.store.InsertAnalysis(a); err != nil {
		slog.Error("failed to store batch row analysis", "batch", filename, "grievance_id", g.ID, "error", err)
		return g.ID, nil, nil
	}
	return g.ID, &a.ID, nil
}

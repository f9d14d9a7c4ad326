package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/storage"
)

// SubmissionResult describes a grievance stored through SubmitAndAnalyze.
// Classification holds the fallback labels when no analysis was stored.
type SubmissionResult struct {
	GrievanceID       uint
	RawText           string
	AnalysisID        *uint
	AnalysisAvailable bool
	Classification    dto.Classification
}

type GrievanceService struct {
	store      storage.Storage
	classifier Classifier
	notifier   ChangeNotifier
}

func NewGrievanceService(store storage.Storage, classifier Classifier, notifier ChangeNotifier) *GrievanceService {
	return &GrievanceService{
		store:      store,
		classifier: classifier,
		notifier:   notifierOrNop(notifier),
	}
}

// Submit stores a grievance without classifying it and returns its id.
func (s *GrievanceService) Submit(rawText string, info *models.UserInfo, origin string) (uint, error) {
	g, err := s.insert(rawText, info, origin)
	if err != nil {
		return 0, err
	}
	s.notifier.GrievancesChanged("submitted", g.ID)
	return g.ID, nil
}

// SubmitAndAnalyze stores a grievance and then tries to classify it. A
// classifier or analysis-store failure does not fail the submission.
func (s *GrievanceService) SubmitAndAnalyze(rawText string, info *models.UserInfo, origin string) (*SubmissionResult, error) {
	g, err := s.insert(rawText, info, origin)
	if err != nil {
		return nil, err
	}

	result := &SubmissionResult{
		GrievanceID:    g.ID,
		RawText:        g.RawText,
		Classification: fallbackClassification(g.RawText),
	}

	analysis, err := s.classifyAndStore(g)
	if err != nil {
		slog.Warn("grievance stored without analysis", "grievance_id", g.ID, "error", err)
	} else {
		result.AnalysisID = &analysis.ID
		result.AnalysisAvailable = true
		result.Classification = dto.Classification{
			Category:   analysis.Category,
			Sentiment:  analysis.Sentiment,
			Urgency:    analysis.Urgency,
			CleanText:  analysis.CleanText,
			Confidence: analysis.Confidence,
		}
	}

	s.notifier.GrievancesChanged("submitted", g.ID)
	return result, nil
}

func (s *GrievanceService) GetGrievance(id uint) (*models.Grievance, error) {
	g, err := s.store.GetGrievanceByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGrievanceNotFound
	}
	return g, err
}

// AnalyzeExisting classifies a stored grievance that has no analysis yet.
func (s *GrievanceService) AnalyzeExisting(id uint) (*models.Analysis, error) {
	g, err := s.GetGrievance(id)
	if err != nil {
		return nil, err
	}
	if g.Analysis != nil {
		return nil, ErrAlreadyAnalyzed
	}

	analysis, err := s.classifyAndStore(g)
	if err != nil {
		return nil, err
	}

	s.notifier.GrievancesChanged("analyzed", g.ID)
	return analysis, nil
}

func (s *GrievanceService) ListGrievances(filter storage.GrievanceFilter) ([]models.Grievance, error) {
	if err := s.store.Ping(); err != nil {
		slog.Error("grievance store unreachable", "error", err)
		return nil, ErrStoreUnavailable
	}
	return s.store.ListGrievancesWithAnalysis(filter)
}

func (s *GrievanceService) insert(rawText string, info *models.UserInfo, origin string) (*models.Grievance, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, ErrValidation
	}

	if err := s.store.Ping(); err != nil {
		slog.Error("grievance store unreachable", "error", err)
		return nil, ErrStoreUnavailable
	}

	g := &models.Grievance{
		RawText:     text,
		SubmittedAt: time.Now(),
		UserInfo:    normalizeUserInfo(info),
	}
	if origin != "" {
		g.IPAddress = &origin
	}

	if err := s.store.InsertGrievance(g); err != nil {
		return nil, err
	}
	return g, nil
}

// classifyAndStore fails with ErrServiceUnavailable when the classifier
// cannot be reached or answers non-2xx.
func (s *GrievanceService) classifyAndStore(g *models.Grievance) (*models.Analysis, error) {
	verdict, err := s.classifier.ClassifyOne(g.RawText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	analysis := newAnalysis(g.ID, g.RawText, verdict)
	if err := s.store.InsertAnalysis(analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

func newAnalysis(grievanceID uint, rawText string, verdict *dto.Classification) *models.Analysis {
	cleanText := verdict.CleanText
	if cleanText == "" {
		cleanText = rawText
	}
	return &models.Analysis{
		GrievanceID: grievanceID,
		Category:    CategoryTaxonomy.Normalize(verdict.Category),
		Sentiment:   SentimentTaxonomy.Normalize(verdict.Sentiment),
		Urgency:     UrgencyTaxonomy.Normalize(verdict.Urgency),
		CleanText:   cleanText,
		Confidence:  verdict.Confidence,
		ProcessedAt: time.Now(),
	}
}

func fallbackClassification(rawText string) dto.Classification {
	return dto.Classification{
		Category:  CategoryTaxonomy.Fallback,
		Sentiment: SentimentTaxonomy.Fallback,
		Urgency:   UrgencyTaxonomy.Fallback,
		CleanText: rawText,
	}
}

// normalizeUserInfo turns empty strings into absent fields and an entirely
// absent bag into nil.
func normalizeUserInfo(info *models.UserInfo) *models.UserInfo {
	if info == nil {
		return nil
	}
	out := &models.UserInfo{
		Name:       nonEmpty(info.Name),
		RoomNumber: nonEmpty(info.RoomNumber),
		Email:      nonEmpty(info.Email),
		Source:     nonEmpty(info.Source),
		Filename:   nonEmpty(info.Filename),
	}
	if out.IsEmpty() {
		return nil
	}
	return out
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

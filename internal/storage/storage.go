// Package storage is the relational grievance store: grievances, their
// analyses and batch summaries, backed by PostgreSQL through GORM.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Storage is the set of store operations the services depend on.
type Storage interface {
	Ping() error

	InsertGrievance(g *models.Grievance) error
	GetGrievanceByID(id uint) (*models.Grievance, error)
	ListGrievancesWithAnalysis(filter GrievanceFilter) ([]models.Grievance, error)

	InsertAnalysis(a *models.Analysis) error
	GetAnalysisByGrievanceID(grievanceID uint) (*models.Analysis, error)

	GetGrievanceStats() (*GrievanceStats, error)

	InsertBatchSummary(s *models.BatchSummary) error
	GetLatestBatchSummary() (*models.BatchSummary, error)
	ListBatchSummaries() ([]models.BatchSummary, error)
}

// GrievanceFilter narrows a grievance listing. Zero value lists everything,
// newest first. Category/Sentiment/Urgency restrict to analysed rows.
type GrievanceFilter struct {
	Search    string
	Category  string
	Sentiment string
	Urgency   string
	Limit     int
}

// GrievanceStats are raw counts straight from the store. The grouped counts
// only consider grievances that have an analysis.
type GrievanceStats struct {
	Total      int
	Categories map[string]int
	Sentiments map[string]int
	Urgencies  map[string]int
}

type Service struct {
	DB *gorm.DB
}

func NewStorageService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

func (s *Service) Ping() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Service) InsertGrievance(g *models.Grievance) error {
	if err := s.DB.Omit("Analysis").Create(g).Error; err != nil {
		return fmt.Errorf("insert grievance: %w", err)
	}
	return nil
}

// GetGrievanceByID returns the grievance with its analysis preloaded, if any.
func (s *Service) GetGrievanceByID(id uint) (*models.Grievance, error) {
	var g models.Grievance
	err := s.DB.Preload("Analysis").First(&g, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get grievance %d: %w", id, err)
	}
	return &g, nil
}

// ListGrievancesWithAnalysis is the left join of grievances with their
// analysis; Analysis is nil for rows that were never classified.
func (s *Service) ListGrievancesWithAnalysis(filter GrievanceFilter) ([]models.Grievance, error) {
	var grievances []models.Grievance
	if err := s.grievanceQuery(filter).Find(&grievances).Error; err != nil {
		return nil, fmt.Errorf("list grievances: %w", err)
	}
	return grievances, nil
}

func (s *Service) grievanceQuery(filter GrievanceFilter) *gorm.DB {
	query := s.DB.Model(&models.Grievance{}).Preload("Analysis")

	if term := strings.TrimSpace(filter.Search); term != "" {
		query = query.Where("user_grievances.raw_text ILIKE ?", "%"+term+"%")
	}

	if filter.Category != "" || filter.Sentiment != "" || filter.Urgency != "" {
		query = query.Joins("JOIN analysis_results ON analysis_results.grievance_id = user_grievances.id")
		if filter.Category != "" {
			query = query.Where("analysis_results.category = ?", filter.Category)
		}
		if filter.Sentiment != "" {
			query = query.Where("analysis_results.sentiment = ?", filter.Sentiment)
		}
		if filter.Urgency != "" {
			query = query.Where("analysis_results.urgency = ?", filter.Urgency)
		}
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	return query.Order("user_grievances.submitted_at DESC")
}

func (s *Service) InsertAnalysis(a *models.Analysis) error {
	if err := s.DB.Omit("Grievance").Create(a).Error; err != nil {
		return fmt.Errorf("insert analysis for grievance %d: %w", a.GrievanceID, err)
	}
	return nil
}

func (s *Service) GetAnalysisByGrievanceID(grievanceID uint) (*models.Analysis, error) {
	var a models.Analysis
	err := s.DB.Where("grievance_id = ?", grievanceID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis for grievance %d: %w", grievanceID, err)
	}
	return &a, nil
}

type labelCount struct {
	Label string
	Count int
}

func (s *Service) GetGrievanceStats() (*GrievanceStats, error) {
	var total int64
	if err := s.DB.Model(&models.Grievance{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count grievances: %w", err)
	}

	stats := &GrievanceStats{Total: int(total)}
	var err error
	if stats.Categories, err = s.countBy("category"); err != nil {
		return nil, err
	}
	if stats.Sentiments, err = s.countBy("sentiment"); err != nil {
		return nil, err
	}
	if stats.Urgencies, err = s.countBy("urgency"); err != nil {
		return nil, err
	}
	return stats, nil
}

// countBy groups analysis rows by one of the fixed label columns.
func (s *Service) countBy(column string) (map[string]int, error) {
	var rows []labelCount
	err := s.DB.Model(&models.Analysis{}).
		Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count analyses by %s: %w", column, err)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Label] = r.Count
	}
	return counts, nil
}

func (s *Service) InsertBatchSummary(summary *models.BatchSummary) error {
	if err := s.DB.Create(summary).Error; err != nil {
		return fmt.Errorf("insert batch summary: %w", err)
	}
	return nil
}

func (s *Service) GetLatestBatchSummary() (*models.BatchSummary, error) {
	var summary models.BatchSummary
	err := s.DB.Order("created_at DESC").First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get latest batch summary: %w", err)
	}
	return &summary, nil
}

func (s *Service) ListBatchSummaries() ([]models.BatchSummary, error) {
	var summaries []models.BatchSummary
	if err := s.DB.Order("created_at DESC").Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("list batch summaries: %w", err)
	}
	return summaries, nil
}

// Package storagetest provides an in-memory storage.Storage for tests.
package storagetest

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/storage"
)

var ErrInjected = errors.New("injected store failure")

// MemStore keeps records in slices. The Fail* fields name 1-based insert
// attempts that should fail with ErrInjected.
type MemStore struct {
	mu sync.Mutex

	PingErr error

	Grievances []models.Grievance
	Analyses   []models.Analysis
	Summaries  []models.BatchSummary

	FailGrievanceInsert map[int]bool
	FailAnalysisInsert  map[int]bool
	FailSummaryInsert   bool

	PingCalls        int
	GrievanceInserts int
	AnalysisInserts  int
}

func New() *MemStore {
	return &MemStore{
		FailGrievanceInsert: map[int]bool{},
		FailAnalysisInsert:  map[int]bool{},
	}
}

func (m *MemStore) Ping() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PingCalls++
	return m.PingErr
}

func (m *MemStore) InsertGrievance(g *models.Grievance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GrievanceInserts++
	if m.FailGrievanceInsert[m.GrievanceInserts] {
		return ErrInjected
	}
	g.ID = uint(len(m.Grievances) + 1)
	stored := *g
	stored.Analysis = nil
	m.Grievances = append(m.Grievances, stored)
	return nil
}

func (m *MemStore) GetGrievanceByID(id uint) (*models.Grievance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.Grievances {
		if g.ID == id {
			out := m.withAnalysis(g)
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *MemStore) ListGrievancesWithAnalysis(filter storage.GrievanceFilter) ([]models.Grievance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Grievance, 0, len(m.Grievances))
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, g := range m.Grievances {
		g = m.withAnalysis(g)
		if term != "" && !strings.Contains(strings.ToLower(g.RawText), term) {
			continue
		}
		if filter.Category != "" || filter.Sentiment != "" || filter.Urgency != "" {
			a := g.Analysis
			if a == nil ||
				(filter.Category != "" && a.Category != filter.Category) ||
				(filter.Sentiment != "" && a.Sentiment != filter.Sentiment) ||
				(filter.Urgency != "" && a.Urgency != filter.Urgency) {
				continue
			}
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MemStore) InsertAnalysis(a *models.Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalysisInserts++
	if m.FailAnalysisInsert[m.AnalysisInserts] {
		return ErrInjected
	}
	a.ID = uint(len(m.Analyses) + 1)
	m.Analyses = append(m.Analyses, *a)
	return nil
}

func (m *MemStore) GetAnalysisByGrievanceID(grievanceID uint) (*models.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Analyses {
		if a.GrievanceID == grievanceID {
			out := a
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *MemStore) GetGrievanceStats() (*storage.GrievanceStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &storage.GrievanceStats{
		Total:      len(m.Grievances),
		Categories: map[string]int{},
		Sentiments: map[string]int{},
		Urgencies:  map[string]int{},
	}
	for _, a := range m.Analyses {
		stats.Categories[a.Category]++
		stats.Sentiments[a.Sentiment]++
		stats.Urgencies[a.Urgency]++
	}
	return stats, nil
}

func (m *MemStore) InsertBatchSummary(s *models.BatchSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSummaryInsert {
		return ErrInjected
	}
	s.ID = uint(len(m.Summaries) + 1)
	s.CreatedAt = time.Now()
	m.Summaries = append(m.Summaries, *s)
	return nil
}

func (m *MemStore) GetLatestBatchSummary() (*models.BatchSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Summaries) == 0 {
		return nil, storage.ErrNotFound
	}
	out := m.Summaries[len(m.Summaries)-1]
	return &out, nil
}

func (m *MemStore) ListBatchSummaries() ([]models.BatchSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.BatchSummary, 0, len(m.Summaries))
	for i := len(m.Summaries) - 1; i >= 0; i-- {
		out = append(out, m.Summaries[i])
	}
	return out, nil
}

// Seed stores a grievance and, when category, sentiment and urgency are all
// given, an analysis for it. It returns the grievance id.
func (m *MemStore) Seed(text string, labels ...string) uint {
	g := &models.Grievance{RawText: text, SubmittedAt: time.Now()}
	if err := m.InsertGrievance(g); err != nil {
		return 0
	}
	if len(labels) == 3 {
		m.InsertAnalysis(&models.Analysis{
			GrievanceID: g.ID,
			Category:    labels[0],
			Sentiment:   labels[1],
			Urgency:     labels[2],
			CleanText:   text,
			ProcessedAt: time.Now(),
		})
	}
	return g.ID
}

func (m *MemStore) withAnalysis(g models.Grievance) models.Grievance {
	for _, a := range m.Analyses {
		if a.GrievanceID == g.ID {
			analysis := a
			g.Analysis = &analysis
			break
		}
	}
	return g
}

var _ storage.Storage = (*MemStore)(nil)

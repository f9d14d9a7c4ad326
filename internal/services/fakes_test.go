package services

import (
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/dto"
	"github.com/stretchr/testify/mock"
)

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) ClassifyOne(rawText string) (*dto.Classification, error) {
	args := m.Called(rawText)
	c, _ := args.Get(0).(*dto.Classification)
	return c, args.Error(1)
}

func (m *mockClassifier) ClassifyBatch(filename string, data []byte) (*dto.BatchAnalysis, error) {
	args := m.Called(filename, data)
	b, _ := args.Get(0).(*dto.BatchAnalysis)
	return b, args.Error(1)
}

func (m *mockClassifier) Status() string {
	return m.Called().String(0)
}

func (m *mockClassifier) BaseURL() string {
	return "http://classifier.test"
}

type recordingNotifier struct {
	reasons []string
	ids     [][]uint
}

func (r *recordingNotifier) GrievancesChanged(reason string, grievanceIDs ...uint) {
	r.reasons = append(r.reasons, reason)
	r.ids = append(r.ids, grievanceIDs)
}

package page

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/noah-isme/sasgp-api/internal/dto"
)

// fakeStore implements every data-access interface and counts calls.
type fakeStore struct {
	mu          sync.Mutex
	calls       int
	solutions   map[string]dto.SolutionResponse
	evaluations []dto.EvaluationResponse
	reports     []dto.ReportResponse
	status      map[string]string
	nextID      int
	failList    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		solutions: map[string]dto.SolutionResponse{},
		status:    map[string]string{},
	}
}

var errFakeNotFound = errors.New("not found")

func (f *fakeStore) hit() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeStore) id() string {
	f.nextID++
	return "doc-" + strconv.Itoa(f.nextID)
}

func (f *fakeStore) Get(_ context.Context, docID string) (dto.SolutionResponse, error) {
	f.hit()
	f.mu.Lock()
	defer f.mu.Unlock()
	solution, ok := f.solutions[docID]
	if !ok {
		return dto.SolutionResponse{}, errFakeNotFound
	}
	return solution, nil
}

func (f *fakeStore) List(context.Context) ([]dto.SolutionResponse, error) {
	f.hit()
	if f.failList != nil {
		return nil, f.failList
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]dto.SolutionResponse, 0, len(f.solutions))
	for _, solution := range f.solutions {
		out = append(out, solution)
	}
	return out, nil
}

func (f *fakeStore) SaveEvaluation(_ context.Context, solutionID string, payload dto.EvaluationRequest) (dto.RecordCreatedResponse, error) {
	f.hit()
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.evaluations = append(f.evaluations, dto.EvaluationResponse{
		RecordHeader: dto.RecordHeader{DocID: id, SolutionID: solutionID},
		Evaluator:    payload.Evaluator,
		Comment:      payload.Comment,
		Estrelas:     payload.Estrelas,
	})
	return dto.RecordCreatedResponse{DocID: id, SolutionID: solutionID}, nil
}

func (f *fakeStore) ListEvaluations(_ context.Context, solutionID string) ([]dto.EvaluationResponse, error) {
	f.hit()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []dto.EvaluationResponse{}
	for _, item := range f.evaluations {
		if item.SolutionID == solutionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveReport(_ context.Context, solutionID string, payload dto.ReportRequest) (dto.RecordCreatedResponse, error) {
	f.hit()
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.reports = append(f.reports, dto.ReportResponse{
		RecordHeader: dto.RecordHeader{DocID: id, SolutionID: solutionID},
		Title:        payload.Title,
		Author:       payload.Author,
		Description:  payload.Description,
	})
	return dto.RecordCreatedResponse{DocID: id, SolutionID: solutionID}, nil
}

func (f *fakeStore) ListReports(_ context.Context, solutionID string) ([]dto.ReportResponse, error) {
	f.hit()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []dto.ReportResponse{}
	for _, item := range f.reports {
		if item.SolutionID == solutionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteReport(_ context.Context, docID string) error {
	f.hit()
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.reports[:0]
	for _, item := range f.reports {
		if item.DocID != docID {
			kept = append(kept, item)
		}
	}
	f.reports = kept
	return nil
}

// statusFake adapts fakeStore to StatusStore, whose Get collides with SolutionReader.
type statusFake struct{ *fakeStore }

func (s statusFake) Get(_ context.Context, docID string) (dto.StatusResponse, error) {
	s.hit()
	s.mu.Lock()
	defer s.mu.Unlock()
	return dto.StatusResponse{DocID: docID, Status: s.status[docID]}, nil
}

func (s statusFake) Set(_ context.Context, docID string, payload dto.StatusRequest) (dto.StatusResponse, error) {
	s.hit()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[docID] = payload.Status
	return dto.StatusResponse{DocID: docID, Status: payload.Status}, nil
}

func (f *fakeStore) seed(docID, solutionID, name string) {
	f.solutions[docID] = dto.SolutionResponse{DocID: docID, SolutionID: solutionID, Name: name}
}

package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/nola-analytics/nola/internal/domain"
)

// MockMetadataService is a mock of MetadataService interface
type MockMetadataService struct {
	ctrl     *gomock.Controller
	recorder *MockMetadataServiceMockRecorder
}

// MockMetadataServiceMockRecorder is the mock recorder for MockMetadataService
type MockMetadataServiceMockRecorder struct {
	mock *MockMetadataService
}

// NewMockMetadataService creates a new mock instance
func NewMockMetadataService(ctrl *gomock.Controller) *MockMetadataService {
	mock := &MockMetadataService{ctrl: ctrl}
	mock.recorder = &MockMetadataServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockMetadataService) EXPECT() *MockMetadataServiceMockRecorder {
	return m.recorder
}

// ListMetrics mocks base method
func (m *MockMetadataService) ListMetrics(ctx context.Context) []domain.CatalogEntry {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMetrics", ctx)
	ret0, _ := ret[0].([]domain.CatalogEntry)
	return ret0
}

// ListMetrics indicates an expected call of ListMetrics
func (mr *MockMetadataServiceMockRecorder) ListMetrics(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMetrics", reflect.TypeOf((*MockMetadataService)(nil).ListMetrics), ctx)
}

// ListDimensions mocks base method
func (m *MockMetadataService) ListDimensions(ctx context.Context) []domain.CatalogEntry {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListDimensions", ctx)
	ret0, _ := ret[0].([]domain.CatalogEntry)
	return ret0
}

// ListDimensions indicates an expected call of ListDimensions
func (mr *MockMetadataServiceMockRecorder) ListDimensions(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListDimensions", reflect.TypeOf((*MockMetadataService)(nil).ListDimensions), ctx)
}

// ListStates mocks base method
func (m *MockMetadataService) ListStates(ctx context.Context) ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListStates", ctx)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListStates indicates an expected call of ListStates
func (mr *MockMetadataServiceMockRecorder) ListStates(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListStates", reflect.TypeOf((*MockMetadataService)(nil).ListStates), ctx)
}

// ListCities mocks base method
func (m *MockMetadataService) ListCities(ctx context.Context, state string) ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListCities", ctx, state)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListCities indicates an expected call of ListCities
func (mr *MockMetadataServiceMockRecorder) ListCities(ctx, state interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListCities", reflect.TypeOf((*MockMetadataService)(nil).ListCities), ctx, state)
}

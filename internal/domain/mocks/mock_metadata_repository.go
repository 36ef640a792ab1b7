package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
)

// MockMetadataRepository is a mock of MetadataRepository interface
type MockMetadataRepository struct {
	ctrl     *gomock.Controller
	recorder *MockMetadataRepositoryMockRecorder
}

// MockMetadataRepositoryMockRecorder is the mock recorder for MockMetadataRepository
type MockMetadataRepositoryMockRecorder struct {
	mock *MockMetadataRepository
}

// NewMockMetadataRepository creates a new mock instance
func NewMockMetadataRepository(ctrl *gomock.Controller) *MockMetadataRepository {
	mock := &MockMetadataRepository{ctrl: ctrl}
	mock.recorder = &MockMetadataRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockMetadataRepository) EXPECT() *MockMetadataRepositoryMockRecorder {
	return m.recorder
}

// ListStates mocks base method
func (m *MockMetadataRepository) ListStates(ctx context.Context) ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListStates", ctx)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListStates indicates an expected call of ListStates
func (mr *MockMetadataRepositoryMockRecorder) ListStates(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListStates", reflect.TypeOf((*MockMetadataRepository)(nil).ListStates), ctx)
}

// ListCities mocks base method
func (m *MockMetadataRepository) ListCities(ctx context.Context, state string) ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListCities", ctx, state)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListCities indicates an expected call of ListCities
func (mr *MockMetadataRepositoryMockRecorder) ListCities(ctx, state interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListCities", reflect.TypeOf((*MockMetadataRepository)(nil).ListCities), ctx, state)
}

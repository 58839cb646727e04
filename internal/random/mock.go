package random

import (
	"github.com/stretchr/testify/mock"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) RoomCode() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Token() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Intn(n int) int {
	args := m.Called(n)
	return args.Int(0)
}

package database

import (
	"github.com/stretchr/testify/mock"
)

type MockMovieNightRepository struct {
	mock.Mock
}

func (m *MockMovieNightRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockMovieNightRepository) CreateRoom(params CreateRoomParams) (Room, User, error) {
	args := m.Called(params)
	return args.Get(0).(Room), args.Get(1).(User), args.Error(2)
}
func (m *MockMovieNightRepository) JoinRoom(code string, params JoinRoomParams) (Room, User, error) {
	args := m.Called(code, params)
	return args.Get(0).(Room), args.Get(1).(User), args.Error(2)
}
func (m *MockMovieNightRepository) GetUserByToken(token string) (User, error) {
	args := m.Called(token)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockMovieNightRepository) GetRoomById(id RoomId) (Room, error) {
	args := m.Called(id)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockMovieNightRepository) AddMovie(params CreateMovieParams) ([]Movie, error) {
	args := m.Called(params)
	if movies, ok := args.Get(0).([]Movie); ok {
		return movies, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMovieNightRepository) ListMovies(roomId RoomId) ([]Movie, error) {
	args := m.Called(roomId)
	if movies, ok := args.Get(0).([]Movie); ok {
		return movies, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockMovieNightRepository) FinishRoom(roomId RoomId, winnerId MovieId) error {
	args := m.Called(roomId, winnerId)
	return args.Error(0)
}

package database

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrRoomFinished is returned when a write targets a room whose status
	// has already transitioned to finished.
	ErrRoomFinished = errors.New("room already finished")
	// ErrNoMovies is returned when a room is finished without any proposals.
	ErrNoMovies = errors.New("no movies to select")
)

type MovieNightRepository interface {
	Ping() error
	CreateRoom(params CreateRoomParams) (Room, User, error)
	JoinRoom(code string, params JoinRoomParams) (Room, User, error)
	GetUserByToken(token string) (User, error)
	GetRoomById(id RoomId) (Room, error)
	AddMovie(params CreateMovieParams) ([]Movie, error)
	ListMovies(roomId RoomId) ([]Movie, error)
	FinishRoom(roomId RoomId, winnerId MovieId) error
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, which callers use to retry room code and token generation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

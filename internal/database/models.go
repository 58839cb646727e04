package database

import (
	"database/sql"
	"time"
)

type RoomId int

type UserId int

type MovieId int

type RoomStatus string

const (
	RoomStatusOpen     RoomStatus = "open"
	RoomStatusFinished RoomStatus = "finished"
)

type Room struct {
	Id            RoomId
	Code          string
	Status        RoomStatus
	WinnerMovieId sql.NullInt64
	CreatedAt     time.Time
}

type User struct {
	Id        UserId
	Name      string
	Token     string
	RoomId    RoomId
	IsHost    bool
	CreatedAt time.Time
}

type Movie struct {
	Id        MovieId
	Title     string
	Year      sql.NullInt64
	RoomId    RoomId
	UserId    UserId
	AddedBy   string
	CreatedAt time.Time
}

type CreateRoomParams struct {
	Code      string
	HostName  string
	HostToken string
}

type JoinRoomParams struct {
	DisplayName string
	Token       string
}

type CreateMovieParams struct {
	Title  string
	Year   sql.NullInt64
	RoomId RoomId
	UserId UserId
}

package database

import (
	"database/sql"
	"time"
)

const (
	createUserQuery = "INSERT INTO users (name, token, room_id, is_host, created_at) " +
		"VALUES ($1, $2, $3, $4, $5) RETURNING id, name, token, room_id, is_host, created_at"
	listMoviesQuery = "SELECT m.id, m.title, m.year, m.room_id, m.user_id, u.name, m.created_at " +
		"FROM movies m JOIN users u ON m.user_id = u.id WHERE m.room_id = $1 ORDER BY m.id"
)

type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func (db *PgMovieNightRepository) CreateRoom(params CreateRoomParams) (Room, User, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Room{}, User{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res := tx.QueryRow(
		"INSERT INTO rooms (code, status, created_at) VALUES ($1, $2, $3) "+
			"RETURNING id, code, status, created_at",
		params.Code,
		RoomStatusOpen,
		time.Now().UTC(),
	)

	var room Room
	err = res.Scan(
		&room.Id,
		&room.Code,
		&room.Status,
		&room.CreatedAt,
	)
	if err != nil {
		return Room{}, User{}, err
	}

	res = tx.QueryRow(
		createUserQuery,
		params.HostName,
		params.HostToken,
		room.Id,
		true,
		time.Now().UTC(),
	)

	var host User
	err = res.Scan(
		&host.Id,
		&host.Name,
		&host.Token,
		&host.RoomId,
		&host.IsHost,
		&host.CreatedAt,
	)
	if err != nil {
		return Room{}, User{}, err
	}

	if err = tx.Commit(); err != nil {
		return Room{}, User{}, err
	}

	return room, host, nil
}

// JoinRoom inserts a guest into the room with the given code. The room row is
// locked for the duration of the transaction so a concurrent finish cannot
// slip between the status check and the insert.
func (db *PgMovieNightRepository) JoinRoom(code string, params JoinRoomParams) (Room, User, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Room{}, User{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res := tx.QueryRow(
		"SELECT id, code, status, created_at FROM rooms WHERE code = $1 FOR UPDATE",
		code,
	)

	var room Room
	err = res.Scan(
		&room.Id,
		&room.Code,
		&room.Status,
		&room.CreatedAt,
	)
	if err != nil {
		return Room{}, User{}, err
	}

	if room.Status == RoomStatusFinished {
		err = ErrRoomFinished
		return Room{}, User{}, err
	}

	res = tx.QueryRow(
		createUserQuery,
		params.DisplayName,
		params.Token,
		room.Id,
		false,
		time.Now().UTC(),
	)

	var user User
	err = res.Scan(
		&user.Id,
		&user.Name,
		&user.Token,
		&user.RoomId,
		&user.IsHost,
		&user.CreatedAt,
	)
	if err != nil {
		return Room{}, User{}, err
	}

	if err = tx.Commit(); err != nil {
		return Room{}, User{}, err
	}

	return room, user, nil
}

func (db *PgMovieNightRepository) GetUserByToken(token string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, token, room_id, is_host, created_at FROM users "+
			"WHERE token = $1 LIMIT 1",
		token,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Name,
		&user.Token,
		&user.RoomId,
		&user.IsHost,
		&user.CreatedAt,
	)

	return user, err
}

func (db *PgMovieNightRepository) GetRoomById(id RoomId) (Room, error) {
	row := db.conn.QueryRow(
		"SELECT id, code, status, winner_movie_id, created_at FROM rooms "+
			"WHERE id = $1 LIMIT 1",
		id,
	)

	var room Room
	err := row.Scan(
		&room.Id,
		&room.Code,
		&room.Status,
		&room.WinnerMovieId,
		&room.CreatedAt,
	)

	return room, err
}

// AddMovie inserts a proposal and returns the room's full proposal list in
// creation order. The status check, insert and read all happen in one
// transaction holding the room row lock.
func (db *PgMovieNightRepository) AddMovie(params CreateMovieParams) ([]Movie, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var status RoomStatus
	err = tx.QueryRow(
		"SELECT status FROM rooms WHERE id = $1 FOR UPDATE",
		params.RoomId,
	).Scan(&status)
	if err != nil {
		return nil, err
	}

	if status == RoomStatusFinished {
		err = ErrRoomFinished
		return nil, err
	}

	_, err = tx.Exec(
		"INSERT INTO movies (title, year, room_id, user_id, created_at) "+
			"VALUES ($1, $2, $3, $4, $5)",
		params.Title,
		params.Year,
		params.RoomId,
		params.UserId,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	movies, err := listMovies(tx, params.RoomId)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (db *PgMovieNightRepository) ListMovies(roomId RoomId) ([]Movie, error) {
	return listMovies(db.conn, roomId)
}

func listMovies(q queryer, roomId RoomId) ([]Movie, error) {
	rows, err := q.Query(listMoviesQuery, roomId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies = make([]Movie, 0)
	for rows.Next() {
		var movie Movie
		err = rows.Scan(
			&movie.Id,
			&movie.Title,
			&movie.Year,
			&movie.RoomId,
			&movie.UserId,
			&movie.AddedBy,
			&movie.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	return movies, rows.Err()
}

// FinishRoom flips the room to finished and records the winner in a single
// conditional update. A room that already finished leaves zero rows affected,
// which keeps the open to finished transition one-way.
func (db *PgMovieNightRepository) FinishRoom(roomId RoomId, winnerId MovieId) error {
	res, err := db.conn.Exec(
		"UPDATE rooms SET status = $1, winner_movie_id = $2 WHERE id = $3 AND status = $4",
		RoomStatusFinished,
		winnerId,
		roomId,
		RoomStatusOpen,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrRoomFinished
	}

	return nil
}

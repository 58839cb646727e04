package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lcosta/movienight/internal/database"
	"github.com/lcosta/movienight/internal/stats"
	"github.com/lcosta/movienight/internal/types"
)

// maxCreateAttempts bounds retries when a generated room code or token
// collides with an existing one.
const maxCreateAttempts = 5

type CreateRoomRequest struct {
	HostName string `json:"hostName"`
}

type JoinRoomRequest struct {
	RoomCode    string `json:"roomCode"`
	DisplayName string `json:"displayName"`
}

type AddMovieRequest struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Year  *int   `json:"year"`
}

type FinishRoomRequest struct {
	Token string `json:"token"`
}

func (s *MovieNightApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func (s *MovieNightApp) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.log.Println("health check:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *MovieNightApp) createRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewValidationError("invalid request body")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.HostName == "" {
		errResp := NewValidationError("hostName is required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var (
		room database.Room
		host database.User
		err  error
	)
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		var code, token string
		code, err = s.rand.RoomCode()
		if err != nil {
			break
		}

		token, err = s.rand.Token()
		if err != nil {
			break
		}

		room, host, err = s.db.CreateRoom(database.CreateRoomParams{
			Code:      code,
			HostName:  req.HostName,
			HostToken: token,
		})
		if !database.IsUniqueViolation(err) {
			break
		}
		s.log.Printf("room code collision on %q, retrying", code)
	}
	if err != nil {
		s.log.Println("create room:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.MetricRoomsCreated)

	s.writeJson(w, http.StatusOK, types.CreateRoomResponse{
		RoomCode: room.Code,
		Host: types.Participant{
			Name:  host.Name,
			Token: host.Token,
		},
	})
}

func (s *MovieNightApp) joinRoom(w http.ResponseWriter, r *http.Request) {
	var req JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewValidationError("invalid request body")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.RoomCode == "" || req.DisplayName == "" {
		errResp := NewValidationError("roomCode and displayName are required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	token, err := s.rand.Token()
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	_, user, err := s.db.JoinRoom(strings.ToUpper(req.RoomCode), database.JoinRoomParams{
		DisplayName: req.DisplayName,
		Token:       token,
	})
	if err != nil {
		var errResp *ApiError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			errResp = NewNotFoundError("room")
		case errors.Is(err, database.ErrRoomFinished):
			errResp = NewInvalidStateError("room already finished")
		default:
			s.log.Println("join room:", err)
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.MetricRoomsJoined)

	s.writeJson(w, http.StatusOK, types.Participant{
		Name:  user.Name,
		Token: user.Token,
	})
}

func (s *MovieNightApp) addMovie(w http.ResponseWriter, r *http.Request) {
	var req AddMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewValidationError("invalid request body")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Token == "" || req.Title == "" {
		errResp := NewValidationError("token and title are required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, err := s.db.GetUserByToken(req.Token)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewUnauthorizedError()
		} else {
			s.log.Println("get user by token:", err)
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var year sql.NullInt64
	if req.Year != nil {
		year = sql.NullInt64{Int64: int64(*req.Year), Valid: true}
	}

	movies, err := s.db.AddMovie(database.CreateMovieParams{
		Title:  req.Title,
		Year:   year,
		RoomId: user.RoomId,
		UserId: user.Id,
	})
	if err != nil {
		var errResp *ApiError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			errResp = NewNotFoundError("room")
		case errors.Is(err, database.ErrRoomFinished):
			errResp = NewInvalidStateError("room already finished")
		default:
			s.log.Println("add movie:", err)
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.MetricMoviesAdded)

	s.writeJson(w, http.StatusOK, types.MovieListResponse{
		Movies: toApiMovies(movies),
	})
}

func (s *MovieNightApp) finishRoom(w http.ResponseWriter, r *http.Request) {
	var req FinishRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewValidationError("invalid request body")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Token == "" {
		errResp := NewValidationError("token is required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, err := s.db.GetUserByToken(req.Token)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewUnauthorizedError()
		} else {
			s.log.Println("get user by token:", err)
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !user.IsHost {
		errResp := NewForbiddenError("only the host can finish the room")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	room, err := s.db.GetRoomById(user.RoomId)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError("room")
		} else {
			s.log.Println("get room:", err)
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if room.Status == database.RoomStatusFinished {
		errResp := NewInvalidStateError("room already finished")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	movies, err := s.db.ListMovies(room.Id)
	if err != nil {
		s.log.Println("list movies:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if len(movies) == 0 {
		errResp := NewInvalidStateError("no movies to select")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	// every proposal is an equally weighted entry, not every proposer
	winner := movies[s.rand.Intn(len(movies))]

	if err := s.db.FinishRoom(room.Id, winner.Id); err != nil {
		var errResp *ApiError
		if errors.Is(err, database.ErrRoomFinished) {
			errResp = NewInvalidStateError("room already finished")
		} else {
			s.log.Println("finish room:", err)
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.MetricRoomsFinished)

	s.writeJson(w, http.StatusOK, types.FinishRoomResponse{
		Message: "room finished",
		Winner: types.Winner{
			Id:    int(winner.Id),
			Title: winner.Title,
			Year:  movieYear(winner.Year),
		},
	})
}

func (s *MovieNightApp) getRoomState(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		errResp := NewValidationError("token is required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, err := s.db.GetUserByToken(token)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewUnauthorizedError()
		} else {
			s.log.Println("get user by token:", err)
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	room, err := s.db.GetRoomById(user.RoomId)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError("room")
		} else {
			s.log.Println("get room:", err)
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	movies, err := s.db.ListMovies(room.Id)
	if err != nil {
		s.log.Println("list movies:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	resp := types.RoomStateResponse{
		RoomCode: room.Code,
		Status:   string(room.Status),
		Movies:   toApiMovies(movies),
	}

	if room.WinnerMovieId.Valid {
		for _, movie := range movies {
			if int64(movie.Id) == room.WinnerMovieId.Int64 {
				resp.Winner = &types.Winner{
					Id:    int(movie.Id),
					Title: movie.Title,
					Year:  movieYear(movie.Year),
				}
				break
			}
		}
	}

	s.writeJson(w, http.StatusOK, resp)
}

func toApiMovies(movies []database.Movie) []types.Movie {
	apiMovies := make([]types.Movie, 0, len(movies))
	for _, movie := range movies {
		apiMovies = append(apiMovies, types.Movie{
			Id:      int(movie.Id),
			Title:   movie.Title,
			Year:    movieYear(movie.Year),
			AddedBy: movie.AddedBy,
		})
	}

	return apiMovies
}

func movieYear(year sql.NullInt64) *int {
	if !year.Valid {
		return nil
	}

	y := int(year.Int64)
	return &y
}

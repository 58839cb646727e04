package types

type Participant struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

type Movie struct {
	Id      int    `json:"id"`
	Title   string `json:"title"`
	Year    *int   `json:"year"`
	AddedBy string `json:"addedBy"`
}

type Winner struct {
	Id    int    `json:"id"`
	Title string `json:"title"`
	Year  *int   `json:"year"`
}

type CreateRoomResponse struct {
	RoomCode string      `json:"roomCode"`
	Host     Participant `json:"host"`
}

type MovieListResponse struct {
	Movies []Movie `json:"movies"`
}

type FinishRoomResponse struct {
	Message string `json:"message"`
	Winner  Winner `json:"winner"`
}

type RoomStateResponse struct {
	RoomCode string  `json:"roomCode"`
	Status   string  `json:"status"`
	Movies   []Movie `json:"movies"`
	Winner   *Winner `json:"winner,omitempty"`
}

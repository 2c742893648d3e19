package model

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	EventID string `json:"eventId"`
}

type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Date        string  `json:"date"`
	Location    *string `json:"location"`
	Img         *string `json:"img"`
}

// UpdateEventRequest carries a partial update; nil fields keep the
// stored value.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
	Img         *string `json:"img"`
}

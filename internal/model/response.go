package model

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type EventListResponse struct {
	Events []Event `json:"events"`
}

type EventResponse struct {
	Event Event `json:"event"`
}

type EventEnvelope struct {
	Message string `json:"message"`
	Event   Event  `json:"event"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
}

type CalendarResponse struct {
	Message   string `json:"message"`
	EventLink string `json:"eventLink"`
}

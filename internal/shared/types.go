package shared

import "time"

// APIResponse is the generic success envelope shared by the backend and its clients.
type APIResponse[T any] struct {
	Data      T      `json:"data"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

func NewAPIResponse[T any](data T, message string, now time.Time) APIResponse[T] {
	return APIResponse[T]{
		Data:      data,
		Message:   message,
		Timestamp: FormatTimestamp(now),
	}
}

type HealthResponse struct {
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"` // seconds since process start
}

type WelcomeResponse struct {
	Message string `json:"message"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return e.Code + ": " + e.Message
}

// PaginationParams is bound from the page/limit query string.
type PaginationParams struct {
	Page  int `form:"page" json:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" json:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize fills in defaults and clamps the limit to MaxPageSize.
func (p PaginationParams) Normalize() PaginationParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PaginatedResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Paginate slices items according to params. Pages past the end yield an empty data slice.
func Paginate[T any](items []T, params PaginationParams) PaginatedResponse[T] {
	p := params.Normalize()
	total := len(items)

	totalPages := total / p.Limit
	if total%p.Limit != 0 {
		totalPages++
	}

	// compare before multiplying so huge page numbers cannot overflow
	start := total
	if p.Page-1 < total/p.Limit+1 {
		start = min((p.Page-1)*p.Limit, total)
	}
	end := start + p.Limit
	if end > total {
		end = total
	}

	data := make([]T, end-start)
	copy(data, items[start:end])

	return PaginatedResponse[T]{
		Data: data,
		Pagination: Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

package user

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Seed returns the fixed records every users store starts with.
// A fresh slice is returned on each call so callers may keep it.
func Seed() []User {
	jan1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan2 := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	return []User{
		{
			ID:        "1",
			Email:     "john.doe@example.com",
			Name:      "John Doe",
			CreatedAt: jan1,
			UpdatedAt: jan1,
		},
		{
			ID:        "2",
			Email:     "jane.smith@example.com",
			Name:      "Jane Smith",
			CreatedAt: jan2,
			UpdatedAt: jan2,
		},
	}
}

package model

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// ShortUser is the public slice of a user shown on rankings.
type ShortUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type GetUsersRequest struct{}

type GetUsersResponse struct {
	Users []User `json:"users"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

type UpdateUserRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type UpdateUserResponse struct{}

type ToggleUserActiveRequest struct {
	ID string `json:"id"`
}

type ToggleUserActiveResponse struct {
	IsActive bool `json:"is_active"`
}

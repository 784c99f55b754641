package models

// User is the public summary of a user. Password data never leaves the server.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	TaskCount int    `json:"taskCount"`
}

// UserInput is the body of signup and profile update calls. An empty
// Password on update keeps the current one.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

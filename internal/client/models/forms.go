package models

// LoginForm is the transient input of the login screen.
type LoginForm struct {
	Email    string
	Password string
}

// RegisterForm is the transient input of the registration screen.
type RegisterForm struct {
	Email           string
	Password        string
	ConfirmPassword string
}

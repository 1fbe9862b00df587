package auth

// LoginData is the view model for the login page. It carries handler
// state into the template, such as an email preserved from a failed
// submission.
type LoginData struct {
	Email string
}

// RegisterData is the view model for the registration page.
type RegisterData struct {
	Email string
}

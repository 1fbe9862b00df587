package forms

import "time"

// LoginSpec returns the built-in login form definition.
func LoginSpec() FormSpec {
	return FormSpec{
		ID:    "login",
		Title: "Sign In",
		Fields: []FieldSpec{
			{
				Name:        "email",
				Kind:        KindEmail,
				Required:    true,
				Placeholder: "you@example.com",
			},
			{
				Name:         "password",
				Kind:         KindPassword,
				Required:     true,
				PasswordRole: RolePrimary,
				Toggle:       true,
			},
			{
				Name:  "remember",
				Kind:  KindCheckbox,
				Label: "Remember me",
			},
		},
		SubmitLabel:    "Sign In",
		BusyLabel:      "Signing in...",
		SubmitDelay:    2000 * time.Millisecond,
		SuccessMessage: "Login successful! Welcome back.",
	}.Normalize()
}

// RegistrationSpec returns the built-in registration form definition.
func RegistrationSpec() FormSpec {
	return FormSpec{
		ID:    "register",
		Title: "Create Account",
		Fields: []FieldSpec{
			{
				Name:        "full_name",
				Kind:        KindText,
				Required:    true,
				Placeholder: "Jane Doe",
			},
			{
				Name:        "email",
				Kind:        KindEmail,
				Required:    true,
				Placeholder: "you@example.com",
			},
			{
				Name:         "password",
				Kind:         KindPassword,
				Required:     true,
				PasswordRole: RolePrimary,
				Meter:        true,
				Toggle:       true,
			},
			{
				Name:         "confirm_password",
				Kind:         KindPassword,
				Required:     true,
				PasswordRole: RoleConfirm,
				Toggle:       true,
			},
			{
				Name:  "terms",
				Kind:  KindCheckbox,
				Terms: true,
				Label: "I accept the terms and conditions",
			},
		},
		SubmitLabel:    "Create Account",
		BusyLabel:      "Creating account...",
		SubmitDelay:    2500 * time.Millisecond,
		RedirectDelay:  1500 * time.Millisecond,
		RedirectURL:    "/login",
		SuccessMessage: "Account created successfully! Redirecting to login...",
	}.Normalize()
}

// Builtin returns the forms the application ships with, keyed by ID.
func Builtin() map[string]FormSpec {
	login := LoginSpec()
	register := RegistrationSpec()
	return map[string]FormSpec{
		login.ID:    login,
		register.ID: register,
	}
}

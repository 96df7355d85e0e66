package models

// Profile is the signed-in user's profile. "frstname" is the backend's
// spelling and must be kept on the wire.
type Profile struct {
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"frstname"`
	LastName        string `json:"lastname"`
	Phone           string `json:"phone,omitempty"`
	Skills          string `json:"skills,omitempty"`
	CurrentLocation string `json:"current_location,omitempty"`
	Experience      string `json:"experience,omitempty"`
	PortfolioURL    string `json:"portfolio_url,omitempty"`
	CareerGoals     string `json:"career_goals,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the success envelope of login and signup.
type TokenResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

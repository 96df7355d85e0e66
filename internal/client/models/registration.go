package models

// Registration is the body of POST /auth/signup.
type Registration struct {
	Profile
	Password string `json:"password"`
}

// Upload is the response of a resume/cover letter upload: the stored
// file locations.
type Upload struct {
	Resume      string `json:"resume,omitempty"`
	CoverLetter string `json:"cover_letter,omitempty"`
}

package models

// Session is the signed-in user as remembered by the CLI. The password is
// never kept; Email is only for display.
type Session struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
}

func (s Session) SignedIn() bool {
	return s.UserID != "" && s.AccessToken != ""
}

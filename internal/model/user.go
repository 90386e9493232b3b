package model

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Profile struct {
	UserID              string `json:"user_id"`
	DisplayName         string `json:"display_name"`
	SustainabilityScore int    `json:"sustainability_score"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User    User    `json:"user"`
	Profile Profile `json:"profile"`
}

type SetSessionRequest struct {
	AccessToken string `json:"access_token"`
}

type SetSessionResponse struct {
	User User `json:"user"`
}

type SignOutRequest struct{}

type SignOutResponse struct{}

package model

// AccessToken is the payload embedded in the jwt access token.
type AccessToken struct {
	ID    string `mapstructure:"id"`
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
	Role  string `mapstructure:"role"`
}

// RefreshToken identifies a rotation family. Family is the raw id held by
// the client; the database stores only its hash.
type RefreshToken struct {
	Family  string `mapstructure:"family"`
	Counter uint64 `mapstructure:"counter"`
}

// PasswordResetToken is a short-lived single-purpose token. Purpose guards
// against an access token being replayed into the reset endpoint.
type PasswordResetToken struct {
	UserID  string `mapstructure:"user_id"`
	Purpose string `mapstructure:"purpose"`
}

const PasswordResetPurpose = "password_reset"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ForgotPasswordResponse struct{}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type ResetPasswordResponse struct{}

package models

import "time"

// UserProfile es el perfil local del usuario del radar.
// La aplicación es de un solo usuario, sin cuentas ni autenticación.
type UserProfile struct {
	Name      string    `json:"name" binding:"required"`
	Avatar    string    `json:"avatar"`
	Plan      string    `json:"plan"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultProfile devuelve el perfil inicial
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:   "Alex Trader",
		Avatar: "https://picsum.photos/seed/alex/40",
		Plan:   "Pro Plan",
	}
}

// Package auth contiene los controllers de autenticación.
package auth

import (
	svc "github.com/dropDatabas3/taskforge/internal/http/services/auth"
)

const (
	maxBodySize     = 64 * 1024 // 64KB
	contentTypeJSON = "application/json; charset=utf-8"
)

// Controllers agrupa los controllers del dominio auth.
type Controllers struct {
	Login    *LoginController
	Register *RegisterController
	Me       *MeController
	Logout   *LogoutController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(login svc.LoginService, register svc.RegisterService, me svc.MeService) *Controllers {
	return &Controllers{
		Login:    NewLoginController(login),
		Register: NewRegisterController(register),
		Me:       NewMeController(me),
		Logout:   NewLogoutController(),
	}
}

// Package auth contiene los DTOs del dominio auth.
package auth

// LoginRequest es el body de POST /v1/auth/login. El hint de tenant es
// opcional: subdominio o id directo.
type LoginRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	TenantSubdomain string `json:"tenantSubdomain,omitempty"`
	TenantID        string `json:"tenantId,omitempty"`
}

// AccountInfo es la vista pública de una cuenta (sin hash).
type AccountInfo struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"fullName"`
	Role     string  `json:"role"`
	TenantID *string `json:"tenantId"`
}

// LoginData es el payload de un login exitoso.
type LoginData struct {
	User      AccountInfo `json:"user"`
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn"` // segundos
}

// LoginResponse es el envelope de respuesta.
type LoginResponse struct {
	Success bool      `json:"success"`
	Data    LoginData `json:"data"`
}

// RegisterTenantRequest es el body de POST /v1/auth/register.
type RegisterTenantRequest struct {
	TenantName    string `json:"tenantName"`
	Subdomain     string `json:"subdomain"`
	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
	AdminFullName string `json:"adminFullName"`
}

// RegisterTenantData es el payload de un registro exitoso.
type RegisterTenantData struct {
	TenantID  string      `json:"tenantId"`
	Subdomain string      `json:"subdomain"`
	AdminUser AccountInfo `json:"adminUser"`
}

// RegisterTenantResponse es el envelope de respuesta del registro.
type RegisterTenantResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    RegisterTenantData `json:"data"`
}

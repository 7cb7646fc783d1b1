package dto

// RegistroRequest entrada del registro de usuario.
type RegistroRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	Nombres         string `json:"nombres"`
	Apellidos       string `json:"apellidos"`
	NumeroDocumento string `json:"numeroDocumento"`
}

// LoginRequest entrada del login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse salida de registro, login y verificación/refresco de token.
type AuthResponse struct {
	Token          string `json:"token"`
	IDUsuario      int64  `json:"idUsuario"`
	Email          string `json:"email"`
	NombreCompleto string `json:"nombreCompleto"`
	Documento      string `json:"documento,omitempty"`
	Mensaje        string `json:"mensaje"`
	Success        bool   `json:"success"`
}

// MessageResponse cuerpo genérico {mensaje, success} para errores y avisos.
type MessageResponse struct {
	Mensaje string `json:"mensaje"`
	Success bool   `json:"success"`
}

package dto

// UsuarioResponse salida de perfil / consulta de usuario (sin password).
type UsuarioResponse struct {
	IDUsuario       int64  `json:"idUsuario"`
	Email           string `json:"email"`
	Nombres         string `json:"nombres"`
	Apellidos       string `json:"apellidos"`
	NumeroDocumento string `json:"numeroDocumento,omitempty"`
	NombreCompleto  string `json:"nombreCompleto"`
}

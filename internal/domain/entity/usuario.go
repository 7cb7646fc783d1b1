package entity

// Usuario representa una identidad registrada capaz de autenticarse y emitir boletas.
// Inmutable después del registro (la rotación de contraseña no está implementada).
type Usuario struct {
	IDUsuario       int64
	Email           string // único, sensible a mayúsculas tal como se almacena
	Nombres         string
	Apellidos       string
	NumeroDocumento string // vacío = sin documento (NULL en DB); único cuando existe
	PasswordHash    string // hash bcrypt, nunca la contraseña en claro
}

// NombreCompleto concatena nombres y apellidos para mostrar.
func (u *Usuario) NombreCompleto() string {
	return u.Nombres + " " + u.Apellidos
}

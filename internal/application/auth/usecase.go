package auth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sistema-ventas/facturacion-api/internal/application/dto"
	"github.com/sistema-ventas/facturacion-api/internal/domain"
	"github.com/sistema-ventas/facturacion-api/internal/domain/entity"
	"github.com/sistema-ventas/facturacion-api/internal/domain/repository"
	"github.com/sistema-ventas/facturacion-api/pkg/jwt"
	"github.com/sistema-ventas/facturacion-api/pkg/logger"
)

// JWTConfig configuración para emisión de tokens de sesión.
// Se inyecta en el constructor; el caso de uso nunca lee estado global.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// AuthUseCase casos de uso de autenticación: registro, login, verificación y
// refresco de tokens. La criptografía del token y el hash de la contraseña
// quedan aislados de la persistencia para poder rotar secret y costo de
// bcrypt sin tocar el esquema.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg, log: log}
}

// RegistrarUsuario crea un usuario: verifica unicidad de email y documento,
// hashea la contraseña con bcrypt, persiste y emite un token de sesión.
func (uc *AuthUseCase) RegistrarUsuario(in dto.RegistroRequest) (*dto.AuthResponse, error) {
	uc.log.Info().Str("email", in.Email).Msg("iniciando registro")

	existe, err := uc.usuarioRepo.ExistsByEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("verificar email: %w", err)
	}
	if existe {
		return nil, domain.ErrEmailYaRegistrado
	}
	if in.NumeroDocumento != "" {
		existe, err := uc.usuarioRepo.ExistsByNumeroDocumento(in.NumeroDocumento)
		if err != nil {
			return nil, fmt.Errorf("verificar documento: %w", err)
		}
		if existe {
			return nil, domain.ErrDocumentoYaRegistrado
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}
	usuario := &entity.Usuario{
		Email:           in.Email,
		Nombres:         in.Nombres,
		Apellidos:       in.Apellidos,
		NumeroDocumento: in.NumeroDocumento,
		PasswordHash:    string(hash),
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}

	uc.log.Info().Int64("id_usuario", usuario.IDUsuario).Msg("usuario creado")

	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.IDUsuario, usuario.Email, time.Now(), uc.jwtCfg.TTL)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return uc.sesion(usuario, token, "Usuario registrado exitosamente"), nil
}

// IniciarSesion verifica email/contraseña y emite un token nuevo.
// La comparación del hash es de tiempo constante (bcrypt).
func (uc *AuthUseCase) IniciarSesion(in dto.LoginRequest) (*dto.AuthResponse, error) {
	uc.log.Info().Str("email", in.Email).Msg("intento de login")

	usuario, err := uc.usuarioRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrCredencialesInvalidas
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.IDUsuario, usuario.Email, time.Now(), uc.jwtCfg.TTL)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	uc.log.Info().Int64("id_usuario", usuario.IDUsuario).Msg("login exitoso")
	return uc.sesion(usuario, token, "Login exitoso"), nil
}

// VerificarToken valida firma, estructura y expiración y devuelve los claims
// (id y email) sin consultar la persistencia.
func (uc *AuthUseCase) VerificarToken(token string) (idUsuario int64, email string, err error) {
	return jwt.Parse(uc.jwtCfg.Secret, token)
}

// VerificarSesion valida el token y re-resuelve el usuario para completar la
// respuesta de sesión (nombre y documento actuales). El token devuelto es el mismo.
func (uc *AuthUseCase) VerificarSesion(token string) (*dto.AuthResponse, error) {
	idUsuario, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, err
	}
	usuario, err := uc.usuarioRepo.GetByID(idUsuario)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	return uc.sesion(usuario, token, "Token válido"), nil
}

// RefrescarToken verifica el token vigente, re-resuelve el usuario (por si su
// email o nombre cambiaron, o fue eliminado) y emite un token con expiración
// nueva. El token anterior sigue siendo criptográficamente válido hasta su
// expiración original: no hay lista de revocación.
func (uc *AuthUseCase) RefrescarToken(oldToken string) (*dto.AuthResponse, error) {
	idUsuario, _, err := jwt.Parse(uc.jwtCfg.Secret, oldToken)
	if err != nil {
		return nil, err
	}
	usuario, err := uc.usuarioRepo.GetByID(idUsuario)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	newToken, err := jwt.Generate(uc.jwtCfg.Secret, usuario.IDUsuario, usuario.Email, time.Now(), uc.jwtCfg.TTL)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	uc.log.Info().Int64("id_usuario", usuario.IDUsuario).Msg("token refrescado")
	return uc.sesion(usuario, newToken, "Token refrescado exitosamente"), nil
}

// EmailDisponible consulta si un email está libre. Sin efectos secundarios.
func (uc *AuthUseCase) EmailDisponible(email string) (bool, error) {
	existe, err := uc.usuarioRepo.ExistsByEmail(email)
	if err != nil {
		return false, fmt.Errorf("verificar email: %w", err)
	}
	return !existe, nil
}

func (uc *AuthUseCase) sesion(u *entity.Usuario, token, mensaje string) *dto.AuthResponse {
	return &dto.AuthResponse{
		Token:          token,
		IDUsuario:      u.IDUsuario,
		Email:          u.Email,
		NombreCompleto: u.NombreCompleto(),
		Documento:      u.NumeroDocumento,
		Mensaje:        mensaje,
		Success:        true,
	}
}

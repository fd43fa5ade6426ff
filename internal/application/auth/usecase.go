// Package auth implementa registro y login de usuarios con JWT.
package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/pkg/config"
	"github.com/jhoicas/erp-api/pkg/jwt"
	"github.com/jhoicas/erp-api/pkg/logger"
)

// Usecase casos de uso de autenticación.
type Usecase struct {
	users  repository.UserRepository
	jwtCfg config.JWTConfig
	log    *logger.Logger
}

// NewUsecase crea el caso de uso.
func NewUsecase(users repository.UserRepository, jwtCfg config.JWTConfig, log *logger.Logger) *Usecase {
	return &Usecase{users: users, jwtCfg: jwtCfg, log: log}
}

// Register da de alta un usuario con contraseña hasheada (bcrypt) y devuelve
// el token de sesión. Si no se indica rol, se asigna admin.
func (u *Usecase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.FullName == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: fullName y email son obligatorios", domain.ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}

	role := req.Role
	if role == "" {
		role = entity.RoleAdmin
	}
	switch role {
	case entity.RoleAdmin, entity.RoleManager, entity.RoleStaff:
	default:
		return nil, fmt.Errorf("%w: rol inválido: %s", domain.ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}

	user := &entity.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := u.users.Create(user); err != nil {
		return nil, err
	}

	u.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("usuario registrado")
	return u.buildAuthResponse(user)
}

// Login valida las credenciales y devuelve el token de sesión.
// Credenciales incorrectas y usuario inexistente devuelven el mismo error.
func (u *Usecase) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}

	user, err := u.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	u.log.Info().Int64("user_id", user.ID).Msg("login exitoso")
	return u.buildAuthResponse(user)
}

func (u *Usecase) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(u.jwtCfg.Secret, user.ID, user.FullName, user.Role, u.jwtCfg.Issuer, u.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

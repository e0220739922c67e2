package identity

import (
	"context"
	"errors"
	"time"

	"github.com/Vitorafonso317/lunysse-backend/internal/domain/clinic"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/identity"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/shared"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// AuthService handles registration, login and session management
type AuthService struct {
	userRepo    identity.UserRepository
	patientRepo clinic.PatientRepository
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	patientRepo clinic.PatientRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		patientRepo: patientRepo,
		jwtService:  jwtService,
		blacklist:   blacklist,
	}
}

// Register creates a new user account. Registering a patient account also
// creates the corresponding clinical record so the patient shows up in
// scheduling before any psychologist claims them.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	user, err := identity.NewUser(req.Email, req.Password, req.Name, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		user.SetContact(req.Phone, "")
	}
	if user.IsPsychologist() {
		if err := user.SetProfessionalInfo(req.Specialty, req.CRP); err != nil {
			return nil, err
		}
	}

	birthDate := clinic.DefaultBirthDate
	if req.BirthDate != "" {
		parsed, parseErr := time.Parse("2006-01-02", req.BirthDate)
		if parseErr != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "Birth date must be in YYYY-MM-DD format")
		}
		birthDate = parsed
		user.SetBirthDate(parsed)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
		}
		return nil, err
	}

	if user.Role == identity.RolePatient {
		patient, perr := clinic.NewPatient(user.Name, user.Email, user.Phone, birthDate, nil)
		if perr != nil {
			return nil, perr
		}
		if perr := s.patientRepo.Create(ctx, patient); perr != nil && !errors.Is(perr, shared.ErrAlreadyExists) {
			return nil, perr
		}
	}

	return s.issueToken(user)
}

// Login authenticates a user by email and password. Unknown emails and
// wrong passwords produce the same error so the response does not leak
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is deactivated")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Me returns the authenticated user's account
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Logout revokes the current token by blacklisting its JTI for the
// remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.AddToBlacklist(ctx, claims.ID, ttl)
}

func (s *AuthService) issueToken(user *identity.User) (*AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		Name:   user.Name,
	})
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

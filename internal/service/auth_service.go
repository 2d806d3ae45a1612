package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ideasnet/server/internal/config"
	"github.com/ideasnet/server/internal/dto"
	"github.com/ideasnet/server/internal/model"
	"github.com/ideasnet/server/internal/repository"
	"github.com/ideasnet/server/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const (
	bcryptCost        = 12
	defaultTokenTTL   = 7 * 24 * time.Hour
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// TokenClaims is the payload carried by every issued JWT.
type TokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Verify(ctx context.Context, userID uuid.UUID) (*model.User, error)
	ValidateToken(tokenString string) (*TokenClaims, error)

	GoogleAuthURL(state string) (string, error)
	HandleGoogleCallback(ctx context.Context, code string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	oauthCfg *oauth2.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	var oauthCfg *oauth2.Config
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		}
	}

	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		oauthCfg: oauthCfg,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	var missing []string
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(input.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(input.FirstName) == "" {
		missing = append(missing, "first name")
	}
	if strings.TrimSpace(input.LastName) == "" {
		missing = append(missing, "last name")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperror.Validation(
			"Missing required fields",
			fmt.Sprintf("Please provide: %s", strings.Join(missing, ", ")),
			missing...,
		)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if len(input.Password) < 6 {
		return nil, apperror.New(http.StatusBadRequest, "Password too short", "Password must be at least 6 characters long", apperror.ErrInvalidInput)
	}
	if len(input.Password) > 100 {
		return nil, apperror.New(http.StatusBadRequest, "Password too long", "Password must be 100 characters or less", apperror.ErrInvalidInput)
	}

	if len(input.Username) < 3 {
		return nil, apperror.New(http.StatusBadRequest, "Username too short", "Username must be at least 3 characters long", apperror.ErrInvalidInput)
	}
	if len(input.Username) > 20 {
		return nil, apperror.New(http.StatusBadRequest, "Username too long", "Username must be 20 characters or less", apperror.ErrInvalidInput)
	}
	if !usernamePattern.MatchString(input.Username) {
		return nil, apperror.New(http.StatusBadRequest, "Invalid username format", "Username can only contain letters, numbers, and underscores (no spaces or special characters)", apperror.ErrInvalidInput)
	}

	if len(strings.TrimSpace(input.FirstName)) < 2 {
		return nil, apperror.New(http.StatusBadRequest, "First name too short", "First name must be at least 2 characters long", apperror.ErrInvalidInput)
	}
	if len(strings.TrimSpace(input.LastName)) < 2 {
		return nil, apperror.New(http.StatusBadRequest, "Last name too short", "Last name must be at least 2 characters long", apperror.ErrInvalidInput)
	}

	username := strings.ToLower(strings.TrimSpace(input.Username))

	existing, err := s.userRepo.FindByEmailOrUsername(ctx, email, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		field := "username"
		value := username
		if strings.EqualFold(existing.Email, email) {
			field = "email"
			value = email
		}
		return nil, apperror.New(
			http.StatusBadRequest,
			"User already exists",
			fmt.Sprintf("An account with this %s (%s) already exists. Please use a different %s or try logging in instead.", field, value, field),
			apperror.ErrConflict,
		)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if s.cfg.JWTSecret == "" {
		log.Println("JWT_SECRET not configured")
		return nil, apperror.New(
			http.StatusInternalServerError,
			"Server configuration error",
			"JWT_SECRET is not configured. Please contact the administrator.",
			apperror.ErrMisconfigured,
		)
	}

	role := input.Role
	if role == "" {
		role = model.RoleEnthusiast
	}

	password := string(hashed)
	user := &model.User{
		Email:     email,
		Username:  username,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Password:  &password,
		Role:      role,
		Skills:    model.StringList{},
		Interests: model.StringList{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, apperror.New(
			http.StatusInternalServerError,
			"Token generation failed",
			"User created but failed to generate authentication token. Please try logging in.",
			err,
		)
	}

	return &dto.AuthResponse{
		Message: "User registered successfully",
		User:    user,
		Token:   token,
	}, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password so accounts can't be enumerated.
			return nil, apperror.New(http.StatusUnauthorized, "Invalid email or password", "", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if user.Password == nil || *user.Password == "" {
		return nil, apperror.New(
			http.StatusUnauthorized,
			"This account was created with Google sign-in. Please use Google sign-in to access your account.",
			"",
			apperror.ErrUnauthorized,
		)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		return nil, apperror.New(http.StatusUnauthorized, "Invalid email or password", "", apperror.ErrUnauthorized)
	}

	if err := s.userRepo.TouchLastActive(ctx, user.ID); err != nil {
		return nil, err
	}
	now := time.Now()
	user.LastActive = &now

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	}, nil
}

func (s *authService) Verify(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusUnauthorized, "Invalid token", "", apperror.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.New(http.StatusUnauthorized, "Invalid token", "", apperror.ErrUnauthorized)
	}
	return claims, nil
}

func (s *authService) GoogleAuthURL(state string) (string, error) {
	if s.oauthCfg == nil {
		return "", apperror.New(http.StatusInternalServerError, "Server configuration error", "Google sign-in is not configured.", apperror.ErrMisconfigured)
	}
	return s.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// HandleGoogleCallback exchanges the authorization code, resolves or creates
// the local account and returns a signed token for the redirect back to the
// client.
func (s *authService) HandleGoogleCallback(ctx context.Context, code string) (string, error) {
	if s.oauthCfg == nil {
		return "", apperror.New(http.StatusInternalServerError, "Server configuration error", "Google sign-in is not configured.", apperror.ErrMisconfigured)
	}

	token, err := s.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	info, err := s.fetchGoogleUserInfo(ctx, token)
	if err != nil {
		return "", err
	}
	if info.Email == "" {
		return "", errors.New("no email found in Google profile")
	}

	user, err := s.resolveGoogleUser(ctx, info)
	if err != nil {
		return "", err
	}

	return s.signToken(user)
}

func (s *authService) fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthCfg.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode Google profile: %w", err)
	}
	return &info, nil
}

func (s *authService) resolveGoogleUser(ctx context.Context, info *googleUserInfo) (*model.User, error) {
	email := strings.ToLower(info.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user != nil {
		if user.GoogleID == nil {
			user.GoogleID = &info.ID
			if info.Picture != "" {
				user.Avatar = &info.Picture
			}
			user.EmailVerified = true
			user.IsVerified = true
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		} else if info.Picture != "" && (user.Avatar == nil || *user.Avatar != info.Picture) {
			user.Avatar = &info.Picture
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	firstName := info.GivenName
	if firstName == "" {
		if parts := strings.Fields(info.Name); len(parts) > 0 {
			firstName = parts[0]
		} else {
			firstName = "User"
		}
	}
	lastName := info.FamilyName
	if lastName == "" {
		if parts := strings.Fields(info.Name); len(parts) > 1 {
			lastName = strings.Join(parts[1:], " ")
		} else {
			lastName = firstName
		}
	}

	username, err := s.uniqueUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	user = &model.User{
		Email:         email,
		Username:      username,
		FirstName:     firstName,
		LastName:      lastName,
		GoogleID:      &info.ID,
		Role:          model.RoleEnthusiast,
		EmailVerified: true,
		IsVerified:    true,
		Skills:        model.StringList{},
		Interests:     model.StringList{},
	}
	if info.Picture != "" {
		user.Avatar = &info.Picture
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("New user created via Google OAuth: %s", user.Email)
	return user, nil
}

// uniqueUsername derives a username from the email local part, appending a
// counter on collision.
func (s *authService) uniqueUsername(ctx context.Context, email string) (string, error) {
	base := strings.Split(email, "@")[0]
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, strings.ToLower(base))
	if base == "" {
		base = "user"
	}

	candidate := base
	for counter := 1; ; counter++ {
		_, err := s.userRepo.FindByUsername(ctx, candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s%d", base, counter)
	}
}

func (s *authService) signToken(user *model.User) (string, error) {
	if s.cfg.JWTSecret == "" {
		return "", apperror.New(
			http.StatusInternalServerError,
			"Server configuration error",
			"JWT_SECRET is not configured. Please contact the administrator.",
			apperror.ErrMisconfigured,
		)
	}

	ttl := defaultTokenTTL
	if s.cfg.JWTTTLMinutes != "" {
		if minutes, err := strconv.Atoi(s.cfg.JWTTTLMinutes); err == nil && minutes > 0 {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	claims := TokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func validateEmail(email string) error {
	invalid := func(message string) error {
		return apperror.New(http.StatusBadRequest, "Invalid email format", message, apperror.ErrInvalidInput)
	}

	if !emailPattern.MatchString(email) {
		return invalid("Please enter a valid email address (e.g., name@example.com). Make sure it contains @ and a domain.")
	}
	if strings.Contains(email, "..") {
		return invalid("Email cannot contain consecutive dots (..)")
	}
	if strings.HasPrefix(email, ".") || strings.HasPrefix(email, "@") {
		return invalid("Email cannot start with a dot or @ symbol")
	}
	if strings.HasSuffix(email, ".") || strings.HasSuffix(email, "@") {
		return invalid("Email cannot end with a dot or @ symbol")
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || !strings.Contains(parts[1], ".") {
		return invalid("Email must have a valid domain (e.g., @gmail.com, @example.com)")
	}
	return nil
}

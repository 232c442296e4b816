package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOAuthDisabled      = errors.New("google sign-in is not configured")
)

const tokenLifetime = 7 * 24 * time.Hour

// Service handles all authentication operations
type Service struct {
	jwtSecret    []byte
	googleConfig *oauth2.Config
}

// NewService creates a new authentication service. Google OAuth is optional:
// with empty client credentials the OAuth endpoints report ErrOAuthDisabled.
func NewService(jwtSecret []byte, googleClientID, googleClientSecret, redirectURL string) *Service {
	s := &Service{jwtSecret: jwtSecret}

	if googleClientID != "" && googleClientSecret != "" {
		if redirectURL == "" {
			redirectURL = "http://localhost:8787/api/v1/auth/google/callback"
		}
		s.googleConfig = &oauth2.Config{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		}
	}

	return s
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// RegisterRequest represents native registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=80"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents native login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a staff account with a password.
func (s *Service) Register(req RegisterRequest) (*AuthResponse, error) {
	var existing models.User
	err := database.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashStr := string(hash)
	user := models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hashStr,
		Role:         models.RoleTeacher,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return s.generateAuthResponse(&user)
}

// Login authenticates with email and password.
func (s *Service) Login(req LoginRequest) (*AuthResponse, error) {
	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		// Google-only account.
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateAuthResponse(&user)
}

// GenerateTokenForUser issues a token for an already-loaded user.
func (s *Service) GenerateTokenForUser(user *models.User) (*AuthResponse, error) {
	return s.generateAuthResponse(user)
}

func (s *Service) generateAuthResponse(user *models.User) (*AuthResponse, error) {
	expiresAt := time.Now().Add(tokenLifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResponse{Token: signed, User: *user, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses a bearer token and loads the user it names.
func (s *Service) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid user_id in token")
	}

	// Fetch fresh user data so role changes take effect immediately.
	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return &user, nil
}

// GoogleOAuthURL returns the Google authorization URL for the given state.
func (s *Service) GoogleOAuthURL(state string) (string, error) {
	if s.googleConfig == nil {
		return "", ErrOAuthDisabled
	}
	return s.googleConfig.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// googleUserInfo is the subset of the userinfo response we use.
type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleGoogleCallback exchanges the authorization code, then finds or
// creates the matching staff account.
func (s *Service) HandleGoogleCallback(ctx context.Context, code string) (*AuthResponse, error) {
	if s.googleConfig == nil {
		return nil, ErrOAuthDisabled
	}

	token, err := s.googleConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	client := s.googleConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetching user info failed: %w", err)
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding user info failed: %w", err)
	}
	if info.Email == "" {
		return nil, errors.New("google account has no email")
	}

	user, err := s.findOrCreateGoogleUser(&info)
	if err != nil {
		return nil, err
	}

	return s.generateAuthResponse(user)
}

func (s *Service) findOrCreateGoogleUser(info *googleUserInfo) (*models.User, error) {
	var user models.User

	err := database.DB.Where("google_id = ?", info.ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Link by email when the account was registered with a password first.
	err = database.DB.Where("email = ?", info.Email).First(&user).Error
	if err == nil {
		user.GoogleID = &info.ID
		if err := database.DB.Save(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		Email:    info.Email,
		Name:     info.Name,
		GoogleID: &info.ID,
		Role:     models.RoleTeacher,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

package auth

import (
	"context"
	"errors"

	"backend-chirp/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	ErrUserExists    = errors.New("user already exists")
	ErrShortPassword = errors.New("password is too short")
	ErrUnknownUser   = errors.New("invalid user")
	ErrWrongPassword = errors.New("invalid password")
)

type Service struct {
	secret []byte
	db     db.Querier
}

// Claims carry only the username. No expiry claim is set: issued tokens stay
// valid indefinitely, matching the deployed contract.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewService(secret string, q db.Querier) *Service {
	return &Service{
		secret: []byte(secret),
		db:     q,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	var existingID int64
	err := s.db.QueryRow(ctx, `
		SELECT id FROM users WHERE username = $1
	`, req.Username).Scan(&existingID)
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if len(req.Password) < minPasswordLength {
		return ErrShortPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO users (name, username, password_hash, gender)
		VALUES ($1,$2,$3,$4)
	`, req.Name, req.Username, string(hash), req.Gender)
	return err
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var hash string
	err := s.db.QueryRow(ctx, `
		SELECT password_hash FROM users WHERE username = $1
	`, req.Username).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return LoginResponse{}, ErrUnknownUser
	}
	if err != nil {
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return LoginResponse{}, ErrWrongPassword
	}

	token, err := s.signToken(req.Username)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{JWTToken: token}, nil
}

// ValidateToken checks signature and structure and returns the embedded
// username as the authenticated identity.
func (s *Service) ValidateToken(token string) (string, error) {
	claims, err := parseToken(token, s.secret)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

func (s *Service) signToken(username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Username: username})
	return token.SignedString(s.secret)
}

func parseToken(token string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}

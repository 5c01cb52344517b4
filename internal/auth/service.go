package auth

import (
	"context"
	"errors"
	"time"

	"backend-storywalk/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 1 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type Service struct {
	secret []byte
	db     db.Querier
}

type Claims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

func NewService(secret string, database db.Querier) *Service {
	return &Service{
		secret: []byte(secret),
		db:     database,
	}
}

// RegisterDevice creates an anonymous device from a client-generated secret
// and issues its first token pair.
func (s *Service) RegisterDevice(ctx context.Context, req RegisterRequest) (Device, TokenResponse, error) {
	if req.Secret == "" {
		return Device{}, TokenResponse{}, errors.New("secret required")
	}
	hash, err := hashSecretFn([]byte(req.Secret), bcrypt.DefaultCost)
	if err != nil {
		return Device{}, TokenResponse{}, err
	}

	device := Device{
		ID:         uuid.NewString(),
		Name:       req.Name,
		SecretHash: string(hash),
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO devices (id, name, secret_hash)
		VALUES ($1,$2,$3)
		RETURNING created_at
	`, device.ID, device.Name, device.SecretHash)
	if err := row.Scan(&device.CreatedAt); err != nil {
		return Device{}, TokenResponse{}, err
	}

	tokens, err := s.GenerateTokens(ctx, device.ID)
	if err != nil {
		return Device{}, TokenResponse{}, err
	}
	return device, tokens, nil
}

// Login re-authenticates a known device with its secret.
func (s *Service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, secret_hash FROM devices WHERE id = $1
	`, req.DeviceID)

	var id, hash string
	if err := row.Scan(&id, &hash); err != nil {
		return TokenResponse{}, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Secret)); err != nil {
		return TokenResponse{}, errors.New("invalid credentials")
	}
	return s.GenerateTokens(ctx, id)
}

func (s *Service) GenerateTokens(ctx context.Context, deviceID string) (TokenResponse, error) {
	access, err := signTokenFn(s, deviceID, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	refresh, err := signTokenFn(s, deviceID, refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	if err := s.saveRefreshToken(ctx, refresh, deviceID, refreshTokenTTL); err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func (s *Service) ValidateRefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}

	deviceID, expiresAt, err := s.lookupRefreshToken(ctx, token)
	if err != nil || deviceID != claims.DeviceID || time.Now().After(expiresAt) {
		return "", errors.New("refresh token invalid")
	}
	return claims.DeviceID, nil
}

func (s *Service) ValidateAccessToken(token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}
	return claims.DeviceID, nil
}

func (s *Service) signToken(deviceID string, ttl time.Duration) (string, error) {
	claims := Claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := parseWithClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
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

var (
	hashSecretFn      = bcrypt.GenerateFromPassword
	parseWithClaimsFn = jwt.ParseWithClaims
	signTokenFn       = (*Service).signToken
)

func (s *Service) saveRefreshToken(ctx context.Context, token, deviceID string, ttl time.Duration) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, device_id, token, expires_at)
		VALUES ($1,$2,$3,$4)
	`, uuid.NewString(), deviceID, token, time.Now().Add(ttl))
	return err
}

func (s *Service) lookupRefreshToken(ctx context.Context, token string) (string, time.Time, error) {
	row := s.db.QueryRow(ctx, `
		SELECT device_id, expires_at
		FROM refresh_tokens
		WHERE token = $1 AND revoked_at IS NULL
	`, token)
	var deviceID string
	var expiresAt time.Time
	if err := row.Scan(&deviceID, &expiresAt); err != nil {
		return "", time.Time{}, err
	}
	return deviceID, expiresAt, nil
}

package router

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/mesa-next/internal/constants"
	handlershared "github.com/mesa-next/internal/http/handlers/shared"
	"github.com/mesa-next/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const cartSessionIssuer = "mesa-cart"

var errCartSessionInvalid = errors.New("cart session token invalid")

// CartSessionSigner 签发与校验购物车会话令牌
type CartSessionSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCartSessionSigner 创建会话签名器；secret 为空时使用进程内随机密钥
func NewCartSessionSigner(secret string, ttl time.Duration) *CartSessionSigner {
	key := []byte(strings.TrimSpace(secret))
	if len(key) == 0 {
		buf := make([]byte, 32)
		_, _ = rand.Read(buf)
		key = []byte(hex.EncodeToString(buf))
		logger.Warnw("cart_session_secret_missing", "fallback", "ephemeral")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &CartSessionSigner{secret: key, ttl: ttl, now: time.Now}
}

// Issue 为会话签发令牌
func (s *CartSessionSigner) Issue(sessionID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		Issuer:    cartSessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse 校验令牌并返回会话 ID
func (s *CartSessionSigner) Parse(token string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cartSessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	claims := &jwt.RegisteredClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return "", errCartSessionInvalid
	}
	return claims.Subject, nil
}

// CartSessionMiddleware 解析 X-Cart-Session；缺失或无效时签发新会话并通过响应头返回
func CartSessionMiddleware(signer *CartSessionSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(constants.CartSessionHeader))
		sessionID := ""
		if token != "" {
			parsed, err := signer.Parse(token)
			if err != nil {
				logger.Debugw("cart_session_rejected", "request_id", getRequestID(c), "error", err)
			} else {
				sessionID = parsed
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		// 每次请求续期
		issued, err := signer.Issue(sessionID)
		if err != nil {
			logger.Errorw("cart_session_issue_failed", "request_id", getRequestID(c), "error", err)
		} else {
			c.Writer.Header().Set(constants.CartSessionHeader, issued)
		}
		c.Set(handlershared.CartSessionKey, sessionID)
		c.Next()
	}
}

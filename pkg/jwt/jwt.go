package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// Manager JWT管理器
// 设计说明:
// 1. 用户体系在外部,Token由外部身份服务签发,本服务只校验
// 2. 签名算法固定为HS256,共享密钥来自配置
// 3. 配置了issuer时同时校验iss声明
type Manager struct {
	secret string
	issuer string
}

// NewManager 创建JWT管理器
func NewManager(secret, issuer string) *Manager {
	return &Manager{secret: secret, issuer: issuer}
}

// Claims 自定义JWT Claims
// 学习要点:
// 1. 嵌入jwt.RegisteredClaims获取标准字段(exp、iat、nbf等)
// 2. user_id是评论作者的外部用户ID
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateToken 签发Token
// 线上由身份服务签发,这里用于测试和本地调试
func (m *Manager) GenerateToken(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", apperrors.Wrap(err, "生成Token失败")
	}
	return signed, nil
}

// ParseToken 解析并验证Token
// 学习要点:
// 1. 验证签名(防止伪造)
// 2. 验证过期时间(exp)和生效时间(nbf)
// 3. jwt/v5返回的是包装错误,要用errors.Is判断具体类型
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.WithCause(apperrors.ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.ErrInvalidToken
}

package services

import (
	"fmt"
	"time"

	"rentledger/errors"
	"rentledger/types"

	"github.com/dgrijalva/jwt-go"
)

// ActorFromToken xác thực chữ ký token và lấy actor từ claim "userinfo"
func ActorFromToken(tokenString, secret string) (types.Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return types.Actor{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", err)
	}

	claimsMap, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return types.Actor{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Không thể parse token", nil)
	}

	// Trích xuất userID và role từ claims
	userInfo, ok := claimsMap["userinfo"].(map[string]interface{})
	if !ok {
		return types.Actor{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy thông tin user trong token", nil)
	}

	userID, okID := userInfo["userid"].(float64)
	if !okID {
		return types.Actor{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy ID user trong token", nil)
	}

	role, okRole := userInfo["role"].(string)
	if !okRole {
		return types.Actor{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy role trong token", nil)
	}

	name, _ := userInfo["name"].(string)
	return types.NewActor(uint(userID), name, role), nil
}

// IssueToken ký token cho actor, dùng cho công cụ nội bộ và test
func IssueToken(actor types.Actor, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userinfo": map[string]interface{}{
			"userid": actor.ID,
			"role":   actor.Role,
			"name":   actor.Name,
		},
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

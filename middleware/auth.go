package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/skyweb/crmserver/database"
)

// jwtKey - clave para firmar el token JWT. Se resuelve en el primer
// uso, no en init(): main carga .env con godotenv después de que los
// paquetes ya iniciaron.
var (
	jwtKey     []byte
	jwtKeyOnce sync.Once
)

func signingKey() []byte {
	jwtKeyOnce.Do(func() {
		jwtSecret := os.Getenv("JWT_SECRET_KEY")
		if jwtSecret == "" {
			// En producción esto debería ser un error o venir de un
			// almacén de secretos.
			log.Println("Advertencia: JWT_SECRET_KEY no está definida, se usa la clave por defecto")
			jwtSecret = "clave_temporal_solo_para_desarrollo"
		}
		jwtKey = []byte(jwtSecret)
	})
	return jwtKey
}

// AuthMiddleware valida el token JWT y autoriza la petición.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "se requiere autorización"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		claims, err := validateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token inválido o vencido"})
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// JWTClaims define los datos que viajan dentro del token.
type JWTClaims struct {
	AdminID string `json:"adminId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken genera un token JWT con vigencia de 24 horas.
func GenerateToken(adminID, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &JWTClaims{
		AdminID: adminID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "skyweb-crm",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(signingKey())
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken verifica y parsea un token JWT (versión exportada).
func ValidateToken(tokenString string) (*JWTClaims, error) {
	return validateToken(tokenString)
}

func validateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
		}
		return signingKey(), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("token inválido")
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, errors.New("formato de token incorrecto")
	}

	return claims, nil
}

// Authenticate autentica a un usuario del panel por email y contraseña.
func Authenticate(email, password string) (string, error) {
	admin, err := database.GetAdmin(email)
	if err != nil || admin == nil {
		return "", errors.New("credenciales incorrectas")
	}

	if !admin.Active {
		return "", errors.New("la cuenta está desactivada")
	}

	if err := database.VerifyPassword(password, admin.PasswordHash); err != nil {
		return "", errors.New("credenciales incorrectas")
	}

	token, err := GenerateToken(admin.ID.String(), admin.Role)
	if err != nil {
		return "", err
	}

	return token, nil
}

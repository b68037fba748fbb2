package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyweb/crmserver/database"
	"github.com/skyweb/crmserver/middleware"
)

// Login autentica a un usuario del panel y devuelve su token.
func Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&credentials); err != nil {
		log.Printf("Login: datos inválidos: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Intento de acceso: %s", credentials.Email)

	token, err := middleware.Authenticate(credentials.Email, credentials.Password)
	if err != nil {
		log.Printf("Login: autenticación fallida para %s: %v", credentials.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	admin, err := database.GetAdmin(credentials.Email)
	if err != nil || admin == nil {
		log.Printf("Login: error obteniendo datos de %s: %v", credentials.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error obteniendo los datos del usuario"})
		return
	}

	admin.PasswordHash = ""

	log.Printf("Acceso correcto: %s (ID: %s)", admin.Email, admin.ID)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": admin,
	})
}

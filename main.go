package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/skyweb/crmserver/database"
	"github.com/skyweb/crmserver/handlers"
	"github.com/skyweb/crmserver/middleware"
	"github.com/skyweb/crmserver/websocket"
)

func main() {
	// Variables de entorno desde .env si existe
	if err := godotenv.Load(); err != nil {
		log.Println("Archivo .env no encontrado, se usan las variables de entorno")
	}

	// Conexión a la base de datos
	if err := database.Init(); err != nil {
		log.Fatalf("Error conectando a la base de datos: %v", err)
	}
	defer database.Close()

	// Router Gin
	r := gin.Default()

	// Middleware de logging
	r.Use(middleware.Logger())

	// CORS para el frontend del panel
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}
	corsConfig := cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Hub de WebSocket del panel
	hub := websocket.NewHub()
	go hub.Run()
	handlers.Init(hub)

	// API del panel. El endpoint de función NO pasa por este CORS:
	// maneja el suyo propio (abierto).
	api := r.Group("/api")
	api.Use(corsConfig)
	{
		// Acceso (público)
		api.POST("/auth/login", handlers.Login)

		// Rutas protegidas
		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			customers := authorized.Group("/customers")
			{
				customers.GET("", handlers.GetCustomers)
				customers.POST("", handlers.CreateCustomer)
				customers.PUT("/:id", handlers.UpdateCustomer)
				customers.GET("/export", handlers.ExportCustomers)
				customers.GET("/:id/reminders", handlers.GetCustomerReminders)
			}

			authorized.GET("/stats", handlers.GetStats)

			chatbot := authorized.Group("/chatbot")
			{
				chatbot.POST("/message", handlers.ChatbotMessage)
				chatbot.GET("/:id/transcript", handlers.GetChatbotTranscript)
				chatbot.DELETE("/:id", handlers.ClearChatbotSession)
			}
		}
	}

	// Endpoint de función: recordatorios de pago por WhatsApp.
	// Lleva su propio CORS abierto y credencial bearer, como lo espera
	// el frontend.
	r.POST("/functions/v1/send-payment-reminders", handlers.SendPaymentReminders)
	r.OPTIONS("/functions/v1/send-payment-reminders", handlers.SendPaymentReminders)

	// WebSocket del panel
	r.GET("/ws", handlers.ServeWS)

	// Arranque del servidor
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Servidor escuchando en el puerto :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error arrancando el servidor: %v", err)
	}
}

package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"

	"github.com/dhafinr/dompetku/backend/api"
	"github.com/dhafinr/dompetku/backend/db"
	_ "github.com/dhafinr/dompetku/backend/docs"
)

// @title Dompetku API
// @version 1.0
// @description Personal finance tracker: wallets, categories, transactions and balances.
// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	// .env необязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	// Подключение к PostgreSQL
	connStr := os.Getenv("POSTGRES_URL")
	storage, err := db.NewStorage(connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer storage.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	handler := api.NewHandler(storage, jwtSecret)

	r := gin.Default()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)

	protected := r.Group("/", handler.AuthMiddleware())
	protected.GET("/users/me", handler.Me)
	protected.GET("/wallets", handler.GetWallets)
	protected.POST("/wallets", handler.CreateWallet)
	protected.DELETE("/wallets/:id", handler.DeleteWallet)
	protected.GET("/categories", handler.GetCategories)
	protected.POST("/categories", handler.CreateCategory)
	protected.GET("/categories/:id", handler.GetCategory)
	protected.PUT("/categories/:id", handler.UpdateCategory)
	protected.DELETE("/categories/:id", handler.DeleteCategory)
	protected.GET("/transactions", handler.GetTransactions)
	protected.GET("/transactions/total", handler.GetTotalBalance)
	protected.GET("/transactions/:id", handler.GetTransaction)
	protected.POST("/transactions", handler.CreateTransaction)
	protected.PUT("/transactions/:id", handler.UpdateTransaction)
	protected.DELETE("/transactions/:id", handler.DeleteTransaction)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.Run()
}

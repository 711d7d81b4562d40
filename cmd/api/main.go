package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/AgusMolinaCode/Radar_Api.git/internal/database"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/middleware"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/repository"
	routes "github.com/AgusMolinaCode/Radar_Api.git/internal/server"
	"github.com/AgusMolinaCode/Radar_Api.git/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Instancia global del actualizador de precios
var priceUpdater *services.PriceUpdater

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		log.Printf("No se pudo cargar el archivo .env: %v", err)
	}

	// Crear el router de Gin
	router := gin.Default()

	// Configurar CORS
	config := cors.DefaultConfig()
	allowedOrigin := os.Getenv("CORS_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}
	config.AllowOrigins = []string{allowedOrigin}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	config.AllowCredentials = true
	config.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(config))

	// Inicializar base de datos
	if err := database.InitDB(); err != nil {
		log.Fatalf("Error al inicializar la base de datos: %v", err)
	}
	defer database.DB.Close()

	// Inicializar repositorios
	middleware.InitRadar()

	// Iniciar el servicio de actualización de precios
	tokenRepo := repository.NewTokenRepository(database.DB)
	positionRepo := repository.NewPositionRepository(database.DB, tokenRepo)
	snapshotRepo := repository.NewSnapshotRepository(database.DB)

	priceUpdater = services.NewPriceUpdater(refreshInterval(), tokenRepo, positionRepo, snapshotRepo)
	priceUpdater.Start()
	defer priceUpdater.Stop()

	// Hacer disponible el actualizador de precios para los handlers
	middleware.SetPriceUpdater(priceUpdater)

	// Configurar las rutas
	routes.RegisterRoutes(router)

	// Iniciar el servidor
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error al iniciar el servidor: %v", err)
	}
}

// refreshInterval lee el intervalo de actualización de precios del entorno
// (en segundos), con 15 segundos por defecto
func refreshInterval() time.Duration {
	if raw := os.Getenv("QUOTE_REFRESH_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 15 * time.Second
}

package router

import (
	"database/sql"
	"net/http"

	"sport_club_backend/internal/handlers"
	"sport_club_backend/internal/middleware"
	"sport_club_backend/internal/repositories"
	"sport_club_backend/internal/repositories/memory"
	"sport_club_backend/internal/services"
	"sport_club_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Repositories groups the storage backends the services are built on.
type Repositories struct {
	Clients     repositories.ClientRepository
	Memberships repositories.MembershipRepository
	Staff       repositories.AuthRepository
}

// PostgresRepositories builds every repository over one connection pool.
func PostgresRepositories(db *sql.DB) Repositories {
	return Repositories{
		Clients:     repositories.NewClientRepository(db),
		Memberships: repositories.NewMembershipRepository(db),
		Staff:       repositories.NewAuthRepository(db),
	}
}

// MemoryRepositories builds process-local repositories; data is lost on exit.
func MemoryRepositories() Repositories {
	clients := memory.NewClientStore()
	return Repositories{
		Clients:     clients,
		Memberships: memory.NewMembershipStore(clients),
		Staff:       memory.NewStaffStore(),
	}
}

// Services groups the business services exposed over HTTP.
type Services struct {
	Auth        services.AuthService
	Clients     services.ClientService
	Memberships services.MembershipService
}

// NewServices wires services on top of repos. loginLimiter may be nil.
func NewServices(repos Repositories, tokens *utils.TokenIssuer, loginLimiter *rate.Limiter) Services {
	clientService := services.NewClientService(repos.Clients)
	return Services{
		Auth:        services.NewAuthService(repos.Staff, tokens, loginLimiter),
		Clients:     clientService,
		Memberships: services.NewMembershipService(repos.Memberships, clientService),
	}
}

// NewEngine creates a gin engine with recovery, request logging and CORS.
func NewEngine(allowedOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return engine
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, svcs Services, tokens *utils.TokenIssuer) {
	authHandler := handlers.NewAuthHandler(svcs.Auth)
	clientHandler := handlers.NewClientHandler(svcs.Clients)
	membershipHandler := handlers.NewMembershipHandler(svcs.Memberships)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(tokens))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupClientRoutes(authenticated, clientHandler, membershipHandler)
		SetupMembershipRoutes(authenticated, membershipHandler)
	}
}

package router

import (
	"sport_club_backend/internal/handlers"
	"sport_club_backend/internal/middleware"
	"sport_club_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes registers the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
}

// SetupAuthenticatedAuthRoutes registers profile and staff management routes.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
	group.POST("/register", middleware.RoleAuthMiddleware(models.RoleAdmin), authHandler.RegisterUser)
}

// SetupClientRoutes sets up the client routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler, membershipHandler *handlers.MembershipHandler) {
	clientRoutes := authenticatedGroup.Group("/clients")
	clientRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.PATCH("/:id/block", clientHandler.ToggleBlockStatus)
		clientRoutes.GET("/:id/status", clientHandler.GetClientStatus)
		clientRoutes.GET("/:id/memberships", membershipHandler.GetClientMemberships)
	}
}

// SetupMembershipRoutes sets up the membership routes.
func SetupMembershipRoutes(authenticatedGroup *gin.RouterGroup, membershipHandler *handlers.MembershipHandler) {
	membershipRoutes := authenticatedGroup.Group("/memberships")
	membershipRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		membershipRoutes.POST("", membershipHandler.CreateMembership)
		membershipRoutes.GET("/:id", membershipHandler.GetMembershipByID)
		membershipRoutes.GET("/:id/active", membershipHandler.IsActiveMembership)
	}
}

package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/GeninoServices01/family-api/internal/audit"
	"github.com/GeninoServices01/family-api/internal/config"
	"github.com/GeninoServices01/family-api/internal/handlers"
	infraRepo "github.com/GeninoServices01/family-api/internal/infra/repository"
	"github.com/GeninoServices01/family-api/internal/middleware"
	"github.com/GeninoServices01/family-api/internal/ratelimit"
	"github.com/GeninoServices01/family-api/internal/storage"
	ucInvitation "github.com/GeninoServices01/family-api/internal/usecase/invitation"
	ucMembership "github.com/GeninoServices01/family-api/internal/usecase/membership"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	familyTreeRepo := infraRepo.NewFamilyTreeGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	authLimiter := ratelimit.New(cfg.RedisURL, 20, time.Minute)
	avatarStore := storage.NewAvatarStore(cfg)

	// ======================================================
	// USE CASES — MEMBERSHIP
	// ======================================================
	registerChildUC := ucMembership.NewRegisterChild(
		familyTreeRepo,
		auditDispatcher,
	)

	listChildrenUC := ucMembership.NewListChildren(
		familyTreeRepo,
	)

	listMembersUC := ucMembership.NewListMembers(
		familyTreeRepo,
	)

	revokeMembershipUC := ucMembership.NewRevokeMembership(
		familyTreeRepo,
		auditDispatcher,
	)

	// ======================================================
	// USE CASES — INVITATIONS
	// ======================================================
	createInvitationUC := ucInvitation.NewCreateInvitation(
		familyTreeRepo,
		auditDispatcher,
	)

	acceptInvitationUC := ucInvitation.NewAcceptInvitation(
		familyTreeRepo,
		auditDispatcher,
	)

	cancelInvitationUC := ucInvitation.NewCancelInvitation(
		familyTreeRepo,
		auditDispatcher,
	)

	listPendingUC := ucInvitation.NewListPendingInvitations(
		familyTreeRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db)

	childHandler := handlers.NewChildHandler(
		db,
		auditDispatcher,
		registerChildUC,
		listChildrenUC,
	)

	familyTreeHandler := handlers.NewFamilyTreeHandler(
		listMembersUC,
		revokeMembershipUC,
		listPendingUC,
	)

	invitationHandler := handlers.NewInvitationHandler(
		createInvitationUC,
		acceptInvitationUC,
		cancelInvitationUC,
	)

	avatarHandler := handlers.NewAvatarHandler(db, avatarStore)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		authAPI.Use(authLimiter.Middleware("auth"))
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
		}

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/profile", profileHandler.GetProfile)
			secured.PUT("/auth/update-life-stage", profileHandler.UpdateLifeStage)

			// ------------------------------
			// CHILDREN
			// ------------------------------
			secured.POST("/children", childHandler.Create)
			secured.GET("/children", childHandler.List)
			secured.PUT("/children/:id", childHandler.Update)
			secured.DELETE("/children/:id", childHandler.Delete)
			secured.POST("/children/:id/avatar", avatarHandler.Upload)
			secured.GET("/children/:id/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// FAMILY TREE
			// ------------------------------
			secured.GET("/family-tree/:childId/members", familyTreeHandler.Members)
			secured.GET("/family-tree/:childId/pending-invitations", familyTreeHandler.PendingInvitations)
			secured.DELETE("/family-tree/:childId/members/:memberId", familyTreeHandler.RemoveMember)

			// ------------------------------
			// INVITATIONS
			// ------------------------------
			secured.POST("/invitations", invitationHandler.Create)
			secured.POST("/invitations/accept", invitationHandler.Accept)
			secured.DELETE("/invitations/:invitationId", invitationHandler.Cancel)
		}
	}
}

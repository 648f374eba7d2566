package v1

import (
	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/matching"
	"github.com/wilsonA2000/verihome/internal/domain/messaging"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/domain/payments"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/domain/ratings"
	"github.com/wilsonA2000/verihome/internal/infrastructure/monitor"
	"github.com/wilsonA2000/verihome/internal/infrastructure/realtime"
	"github.com/wilsonA2000/verihome/internal/infrastructure/redisclient"
	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Services bundles everything the route tree depends on.
type Services struct {
	AccountService      accounts.AccountService
	PropertyService     properties.PropertyService
	MatchService        matching.MatchService
	LeaseService        leases.LeaseService
	MessageService      messaging.MessageService
	PaymentService      payments.PaymentService
	RatingService       ratings.RatingService
	NotificationService notifications.NotificationService
	AuditService        activity.AuditService

	Tokens  accounts.TokenIssuer
	Hub     *realtime.Hub
	Monitor *monitor.Monitor
	Redis   *redisclient.Client
	DB      *gorm.DB
	Auth    *config.AuthSettings
	Logger  logger.Logger
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, deps *Services) {
	r.Use(middleware.Metrics())

	healthHandler := NewHealthHandler(deps.DB, deps.Redis)
	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	accountHandler := NewAccountHandler(deps.AccountService)
	propertyHandler := NewPropertyHandler(deps.PropertyService)
	matchHandler := NewMatchHandler(deps.MatchService)
	leaseHandler := NewLeaseHandler(deps.LeaseService)
	messageHandler := NewMessageHandler(deps.MessageService)
	paymentHandler := NewPaymentHandler(deps.PaymentService, deps.LeaseService)
	ratingHandler := NewRatingHandler(deps.RatingService)
	notificationHandler := NewNotificationHandler(deps.NotificationService)
	websocketHandler := NewWebsocketHandler(deps.Hub, deps.Logger)
	adminHandler := NewAdminHandler(deps.AuditService, deps.Monitor, deps.Redis, deps.Logger)

	loginLimiter := middleware.NewIPRateLimiter(deps.Auth.LoginRatePerMin, deps.Auth.LoginBurst)

	v1 := r.Group(BasePath) // lookup in version file

	// Public routes
	v1.POST("/auth/register", accountHandler.Register)
	v1.POST("/auth/login", loginLimiter.Middleware(), accountHandler.Login)
	v1.POST("/auth/refresh", accountHandler.Refresh)
	v1.GET("/properties", propertyHandler.List)

	authed := v1.Group("", middleware.RequireAuth(deps.Tokens))
	landlordOnly := middleware.RequireRole(accounts.RoleLandlord)
	tenantOnly := middleware.RequireRole(accounts.RoleTenant)
	adminOnly := middleware.RequireAdmin(deps.AccountService)

	// Account routes
	authed.GET("/auth/me", accountHandler.GetMe)
	authed.PUT("/auth/me", accountHandler.UpdateMe)

	// Property routes. Browsing is public, everything else needs the
	// landlord role. The static mine segment must not be shadowed, gin
	// resolves it before the :id parameter.
	v1.GET("/properties/:id", propertyHandler.GetByID)
	authed.GET("/properties/mine", landlordOnly, propertyHandler.ListMine)
	authed.POST("/properties", landlordOnly, propertyHandler.Create)
	authed.PUT("/properties/:id", landlordOnly, propertyHandler.Update)
	authed.DELETE("/properties/:id", landlordOnly, propertyHandler.Delete)

	// Match routes
	authed.POST("/matches", tenantOnly, matchHandler.Create)
	authed.GET("/matches", matchHandler.List)
	authed.GET("/matches/:id", matchHandler.GetByID)
	authed.POST("/matches/:id/accept", matchHandler.Accept)
	authed.POST("/matches/:id/reject", matchHandler.Reject)
	authed.POST("/matches/:id/cancel", matchHandler.Cancel)
	authed.POST("/matches/:id/visit", matchHandler.ScheduleVisit)
	authed.POST("/matches/:id/visit/complete", matchHandler.CompleteVisit)
	authed.POST("/matches/:id/documents", matchHandler.SubmitDocuments)
	authed.POST("/matches/:id/documents/approve", matchHandler.ApproveDocuments)

	// Lease routes
	authed.POST("/leases", landlordOnly, leaseHandler.Create)
	authed.GET("/leases", leaseHandler.List)
	authed.GET("/leases/:id", leaseHandler.GetByID)
	authed.PUT("/leases/:id", landlordOnly, leaseHandler.Amend)
	authed.POST("/leases/:id/sign", leaseHandler.SignStep)
	authed.GET("/leases/:id/signatures", leaseHandler.GetSignature)
	authed.POST("/leases/:id/terminate", leaseHandler.Terminate)
	authed.GET("/leases/:id/transactions", paymentHandler.ListByLease)
	authed.GET("/leases/:id/payment-plan", paymentHandler.GetPlanByLease)
	authed.GET("/leases/:id/balance", paymentHandler.LeaseBalance)

	// Messaging routes
	authed.POST("/threads", messageHandler.StartThread)
	authed.GET("/threads", messageHandler.ListThreads)
	authed.GET("/threads/:id", messageHandler.GetThread)
	authed.GET("/threads/:id/messages", messageHandler.ListMessages)
	authed.POST("/threads/:id/messages", messageHandler.Send)
	authed.POST("/threads/:id/read", messageHandler.MarkRead)
	authed.GET("/messages/unread-count", messageHandler.UnreadCount)

	// Payment routes
	authed.POST("/transactions", paymentHandler.Charge)
	authed.GET("/transactions/:id", paymentHandler.GetByID)
	authed.POST("/transactions/:id/settle", paymentHandler.Settle)
	authed.POST("/transactions/:id/refund", paymentHandler.Refund)
	authed.POST("/payment-plans", paymentHandler.CreatePlan)
	authed.POST("/installments/:id/pay", paymentHandler.PayInstallment)
	authed.GET("/payments/balance", paymentHandler.Balance)

	// Rating routes
	authed.POST("/ratings", ratingHandler.Create)
	authed.GET("/ratings/:id", ratingHandler.GetByID)
	authed.POST("/ratings/:id/respond", ratingHandler.Respond)
	authed.DELETE("/ratings/:id", adminOnly, ratingHandler.Delete)
	authed.GET("/users/:id/ratings", ratingHandler.ListForUser)
	authed.GET("/users/:id/rating-summary", ratingHandler.Summary)

	// Notification routes
	authed.GET("/notifications", notificationHandler.List)
	authed.POST("/notifications/:id/read", notificationHandler.MarkRead)
	authed.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	authed.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	authed.GET("/ws/notifications", websocketHandler.Connect)

	// Admin routes
	admin := authed.Group("/admin", adminOnly)
	admin.GET("/users", accountHandler.ListUsers)
	admin.GET("/activity", adminHandler.ListActivity)
	admin.GET("/activity/report", adminHandler.ActivityReport)
	admin.GET("/activity/export", adminHandler.ExportActivity)
	admin.GET("/performance", adminHandler.Performance)
}

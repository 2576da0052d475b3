package controlplane

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"

	"github.com/guardianhealth/medmaintain/internal/controlplane/handlers"
	"github.com/guardianhealth/medmaintain/internal/controlplane/middleware"
	"github.com/guardianhealth/medmaintain/internal/version"
)

type RouteConfig struct {
	Auth middleware.TokenAuthConfig
}

func SetupRoutes(deps *Deps, routeConfig *RouteConfig) http.Handler {
	r := gin.New()

	rateLimitStore := memory.NewStore()
	rateLimiter := limiter.New(rateLimitStore, limiter.Rate{
		Period: 1 * time.Second,
		Limit:  10,
	})

	statusH := handlers.NewStatusHandler(deps.Store, deps.Engine, deps.Monitor)
	connH := handlers.NewConnectivityHandler(deps.Monitor)
	syncH := handlers.NewSyncHandler(deps.Store, deps.Engine)
	equipmentH := handlers.NewEquipmentHandler(deps.Store, deps.Engine)
	occurrenceH := handlers.NewOccurrenceHandler(deps.Store, deps.Engine)
	alertH := handlers.NewAlertHandler(deps.Store, deps.Engine)
	taskH := handlers.NewTaskHandler(deps.Store, deps.Engine)
	settingsH := handlers.NewSettingsHandler(deps.Store, deps.SDK, deps.Monitor, deps.Engine)
	systemH := handlers.NewSystemHandler(deps.Store, deps.Persister, deps.Accounts, deps.SDK, deps.Monitor)
	backupH := handlers.NewBackupHandler(deps.Store, deps.Engine)
	authH := handlers.NewAuthHandler(deps.Accounts)

	r.Use(gin.Recovery())
	r.Use(sloggin.New(slog.Default()))
	r.Use(middleware.CORS())
	r.Use(middleware.Gzip())
	r.Use(mgin.NewMiddleware(rateLimiter))

	r.GET("/", IndexHandler)

	v1 := r.Group("/v1")
	v1.Use(middleware.TokenAuth(routeConfig.Auth))
	{
		v1.GET("/status", statusH.Status)

		v1Auth := v1.Group("/auth")
		{
			v1Auth.POST("/login", authH.Login)
			v1Auth.POST("/register", authH.Register)
			v1Auth.POST("/logout", authH.Logout)
		}

		v1Conn := v1.Group("/connectivity")
		{
			v1Conn.GET("", connH.Status)
			v1Conn.POST("/online", connH.SetOnline)
			v1Conn.GET("/latency", connH.Latency)
		}

		v1Sync := v1.Group("/sync")
		{
			v1Sync.GET("/status", syncH.Status)
			v1Sync.POST("/now", syncH.TriggerSync)
			v1Sync.POST("/retry", syncH.RetryErrored)
		}

		v1Equipments := v1.Group("/equipments")
		{
			v1Equipments.GET("", equipmentH.List)
			v1Equipments.POST("", equipmentH.Create)
			v1Equipments.POST("/import", equipmentH.ImportCSV)
		}

		v1Occurrences := v1.Group("/occurrences")
		{
			v1Occurrences.GET("", occurrenceH.List)
			v1Occurrences.POST("", occurrenceH.Create)
			v1Occurrences.POST("/:id/advance", occurrenceH.Advance)
		}

		v1Alerts := v1.Group("/alerts")
		{
			v1Alerts.GET("", alertH.List)
			v1Alerts.POST("", alertH.Create)
			v1Alerts.POST("/:id/resolve", alertH.Resolve)
		}

		v1Tasks := v1.Group("/tasks")
		{
			v1Tasks.GET("", taskH.List)
			v1Tasks.POST("", taskH.Schedule)
			v1Tasks.POST("/:id/complete", taskH.Complete)
		}

		v1.GET("/settings", settingsH.Get)
		v1.PUT("/settings", settingsH.Update)

		v1System := v1.Group("/system")
		{
			v1System.POST("/reset", systemH.Reset)
		}

		v1Backup := v1.Group("/backup")
		{
			v1Backup.GET("/export", backupH.Export)
			v1Backup.POST("/import", backupH.Import)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
		})
	})

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "method not allowed",
		})
	})

	return r.Handler()
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func IndexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, version.Detailed())
}

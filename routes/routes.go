package routes

import (
	"fmt"

	"business-directory-api/access"
	"business-directory-api/config"
	"business-directory-api/dto"
	"business-directory-api/handlers"
	"business-directory-api/middleware"
	"business-directory-api/throttle"

	"github.com/gin-gonic/gin"
)

// crud holds the five handlers of a collection.
type crud struct {
	list, retrieve, create, update, destroy gin.HandlerFunc
}

// resource mounts /<res>/ and /<res>/:id/ with the policy for each action.
func resource(g *gin.RouterGroup, res access.Resource, h crud) {
	base := "/" + string(res) + "/"
	detail := base + ":id/"
	auth := func(act access.Action) gin.HandlerFunc { return middleware.Authorize(res, act) }

	g.GET(base, auth(access.List), h.list)
	g.POST(base, auth(access.Create), h.create)
	g.GET(detail, auth(access.Retrieve), h.retrieve)
	g.PUT(detail, auth(access.Update), h.update)
	g.PATCH(detail, auth(access.Update), h.update)
	g.DELETE(detail, auth(access.Destroy), h.destroy)
}

// SetupRoutes mounts the API on r. It fails only when the trusted proxy
// list is malformed.
func SetupRoutes(r *gin.Engine) error {
	dto.RegisterValidation()

	// Rate limits key anonymous callers on the client address, so forwarded
	// headers are honoured only from configured proxies.
	if err := r.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}

	limiter := throttle.New(config.DB, config.AppConfig.AuthRateLimit, config.AppConfig.AuthRateWindow)

	// ── Media ──────────────────────────────────────────────────────
	r.Static("/media", config.AppConfig.MediaRoot)

	api := r.Group("/api")
	api.Use(middleware.Authenticate())

	// ── Auth ───────────────────────────────────────────────────────
	api.POST("/signup/",
		middleware.Authorize(access.Signup, access.Create),
		middleware.RateLimit(limiter, string(access.Signup)),
		handlers.Signup)
	api.POST("/login/",
		middleware.Authorize(access.Login, access.Create),
		middleware.RateLimit(limiter, string(access.Login)),
		handlers.Login)
	api.POST("/token/refresh/", middleware.Authorize(access.TokenRefresh, access.Create), handlers.RefreshToken)

	// Policy table (handy for docs/Postman)
	api.GET("/access-rules/", handlers.GetAccessRules)

	// ── Businesses ─────────────────────────────────────────────────
	api.GET("/businesses/owner/", middleware.Authorize(access.Businesses, access.OwnerList), handlers.GetOwnerBusinesses)
	resource(api, access.Businesses, crud{
		list:     handlers.ListBusinesses,
		retrieve: handlers.GetBusiness,
		create:   handlers.CreateBusiness,
		update:   handlers.UpdateBusiness,
		destroy:  handlers.DeleteBusiness,
	})

	resource(api, access.Users, crud{
		list:     handlers.ListUsers,
		retrieve: handlers.GetUser,
		create:   handlers.CreateUser,
		update:   handlers.UpdateUser,
		destroy:  handlers.DeleteUser,
	})

	// ── Business children ──────────────────────────────────────────
	resource(api, access.Events, crud{
		list:     handlers.ListEvents,
		retrieve: handlers.GetEvent,
		create:   handlers.CreateEvent,
		update:   handlers.UpdateEvent,
		destroy:  handlers.DeleteEvent,
	})
	api.POST("/inventory/import/", middleware.Authorize(access.Inventory, access.Import), handlers.ImportInventory)
	api.GET("/inventory/export/", middleware.Authorize(access.Inventory, access.Export), handlers.ExportInventory)
	resource(api, access.Inventory, crud{
		list:     handlers.ListInventory,
		retrieve: handlers.GetInventoryItem,
		create:   handlers.CreateInventoryItem,
		update:   handlers.UpdateInventoryItem,
		destroy:  handlers.DeleteInventoryItem,
	})
	resource(api, access.Reviews, crud{
		list:     handlers.ListReviews,
		retrieve: handlers.GetReview,
		create:   handlers.CreateReview,
		update:   handlers.UpdateReview,
		destroy:  handlers.DeleteReview,
	})
	resource(api, access.Messages, crud{
		list:     handlers.ListMessages,
		retrieve: handlers.GetMessage,
		create:   handlers.CreateMessage,
		update:   handlers.UpdateMessage,
		destroy:  handlers.DeleteMessage,
	})
	resource(api, access.BusinessImages, crud{
		list:     handlers.ListBusinessImages,
		retrieve: handlers.GetBusinessImages,
		create:   handlers.CreateBusinessImages,
		update:   handlers.UpdateBusinessImages,
		destroy:  handlers.DeleteBusinessImages,
	})
	return nil
}

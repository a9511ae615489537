package routes

import (
	"verdia/auth"
	"verdia/cart"
	"verdia/catalog"
	"verdia/middleware"
	"verdia/notify"
	"verdia/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/plants", middleware.OptionalAuth(catalog.GetPlants))
	router.GET("/api/plants/:id", middleware.OptionalAuth(catalog.GetPlant))
	router.GET("/api/designs", middleware.OptionalAuth(catalog.GetDesigns))
	router.GET("/api/designs/:id", middleware.OptionalAuth(catalog.GetDesign))
	router.GET("/api/maintenance", middleware.OptionalAuth(catalog.GetMaintenancePackages))
	router.GET("/api/maintenance/:id", middleware.OptionalAuth(catalog.GetMaintenancePackage))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	eng := cart.NewEngine(cart.NewMongoStore(), catalog.NewLookup())
	h := cart.NewHandler(eng)

	router.POST("/api/cart", rl.Limit(middleware.Authenticate(h.AddToCart)))
	router.GET("/api/cart", middleware.Authenticate(h.GetCart))
	router.PATCH("/api/cart", rl.Limit(middleware.Authenticate(h.UpdateCartItem)))
	router.DELETE("/api/cart", rl.Limit(middleware.Authenticate(h.RemoveFromCart)))
}

func AddNotifyRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/ws/events", notify.ServeWS(hub))
}

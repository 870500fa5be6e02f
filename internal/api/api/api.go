package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"gatepass/cmd/middleware"
	"gatepass/internal/service"
)

type Routers struct {
	Service service.Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())
	apiGroup := app.Group("/v1")

	apiGroup.POST("/events", r.Service.CreateEvent)
	apiGroup.PUT("/events/:id", r.Service.UpdateEvent)
	apiGroup.GET("/events/:id", r.Service.GetEvent)
	apiGroup.GET("/events", r.Service.ListEvents)

	apiGroup.POST("/payment/create-order", r.Service.CreateOrder)
	apiGroup.POST("/payment/verify", r.Service.VerifyPayment)

	apiGroup.POST("/admin/scan-ticket", r.Service.ScanTicket)
	apiGroup.GET("/admin/scan-ticket", r.Service.ScanStats)

	return app
}

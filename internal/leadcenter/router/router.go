// Package router wires the lead center HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/lead-center/internal/leadcenter/handler"
	"github.com/kart-io/lead-center/pkg/auth"
	"github.com/kart-io/lead-center/pkg/middleware"
)

// Handlers groups the HTTP handlers registered on the engine.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Role       *handler.RoleHandler
	Lead       *handler.LeadHandler
	Attendance *handler.AttendanceHandler
	Warning    *handler.WarningHandler
	Ticket     *handler.TicketHandler
}

// Register registers all routes on the engine.
func Register(engine *gin.Engine, authn auth.Authenticator, h *Handlers) {
	authed := middleware.Auth(authn)

	authGroup := engine.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		// Refresh validates the token itself so an expired one can
		// still be exchanged inside the refresh window.
		authGroup.POST("/refresh", h.Auth.Refresh)

		protected := authGroup.Group("", authed)
		{
			protected.POST("/logout", h.Auth.Logout)
			protected.POST("/password", h.Auth.ChangePassword)
			protected.GET("/me", h.User.Profile)
		}
	}

	v1 := engine.Group("/v1", authed)
	{
		users := v1.Group("/users")
		{
			users.POST("", h.User.Create)
			users.GET("", h.User.List)
			users.GET("/:id", h.User.Get)
			users.PUT("/:id", h.User.Update)
			users.DELETE("/:id", h.User.Delete)
		}

		roles := v1.Group("/roles")
		{
			roles.POST("", h.Role.Create)
			roles.GET("", h.Role.List)
			roles.GET("/:id", h.Role.Get)
			roles.PUT("/:id", h.Role.Update)
			roles.DELETE("/:id", h.Role.Delete)
		}

		leads := v1.Group("/leads")
		{
			leads.POST("", h.Lead.Create)
			leads.GET("", h.Lead.List)
			leads.GET("/:id", h.Lead.Get)
			leads.PUT("/:id", h.Lead.Update)
			leads.DELETE("/:id", h.Lead.Delete)
			leads.POST("/:id/assign", h.Lead.Assign)
			leads.POST("/:id/notes", h.Lead.AddNote)
			leads.GET("/:id/notes", h.Lead.ListNotes)
		}

		attendance := v1.Group("/attendance")
		{
			attendance.POST("/check-in", h.Attendance.CheckIn)
			attendance.POST("/check-out", h.Attendance.CheckOut)
			attendance.GET("", h.Attendance.List)
		}

		warnings := v1.Group("/warnings")
		{
			warnings.POST("", h.Warning.Issue)
			warnings.GET("", h.Warning.List)
			warnings.POST("/:id/ack", h.Warning.Acknowledge)
		}

		tickets := v1.Group("/tickets")
		{
			tickets.POST("", h.Ticket.Create)
			tickets.GET("", h.Ticket.List)
			tickets.GET("/:id", h.Ticket.Get)
			tickets.PUT("/:id", h.Ticket.Update)
		}
	}
}

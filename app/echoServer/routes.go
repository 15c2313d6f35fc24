package echoServer

import (
	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/controller/user"

	"github.com/labstack/echo/v4"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Request *request.Controller
	Booking *booking.Controller
}

func Register(e *echo.Echo, c C) {
	// Users carry no identity header.
	e.POST("/users", c.User.Create)
	e.GET("/users", c.User.All)
	e.GET("/users/:id", c.User.ByID)
	e.PATCH("/users/:id", c.User.Update)
	e.DELETE("/users/:id", c.User.Delete)

	// Search is open to anyone, no identity needed.
	e.GET("/items/search", c.Item.Search)

	id := UserIdentity()

	e.POST("/items", c.Item.Create, id)
	e.PATCH("/items/:id", c.Item.Update, id)
	e.GET("/items/:id", c.Item.ByID, id)
	e.GET("/items", c.Item.ByOwner, id)
	e.POST("/items/:id/comment", c.Item.AddComment, id)

	e.POST("/requests", c.Request.Create, id)
	e.GET("/requests", c.Request.Own, id)
	e.GET("/requests/all", c.Request.All, id)
	e.GET("/requests/:id", c.Request.ByID, id)

	e.POST("/bookings", c.Booking.Create, id)
	e.PATCH("/bookings/:id", c.Booking.Decide, id)
	e.GET("/bookings/:id", c.Booking.ByID, id)
	e.GET("/bookings", c.Booking.ByBooker, id)
	e.GET("/bookings/owner", c.Booking.ByOwner, id)
}

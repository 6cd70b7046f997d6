// Package usersserver exposes the users REST API over gin.
package usersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		case http.MethodHead:
			router.HEAD(route.Pattern, route.HandlerFunc)
		case http.MethodOptions:
			router.OPTIONS(route.Pattern, route.HandlerFunc)
		}
	}

	return router
}

// DefaultHandleFunc is the default handler for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the UserAPI part of the API
	UserAPI UserAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Health",
			http.MethodGet,
			"/healthz",
			Health,
		},
		{
			"HealthHead",
			http.MethodHead,
			"/healthz",
			Health,
		},
		{
			"HealthOptions",
			http.MethodOptions,
			"/healthz",
			Health,
		},
		{
			"ListUsers",
			http.MethodGet,
			"/api/users",
			handleFunctions.UserAPI.ListUsers,
		},
		{
			"CreateUser",
			http.MethodPost,
			"/api/users",
			handleFunctions.UserAPI.CreateUser,
		},
		{
			"GetUserById",
			http.MethodGet,
			"/api/users/:id",
			handleFunctions.UserAPI.GetUserById,
		},
		{
			"UpdateUser",
			http.MethodPut,
			"/api/users/:id",
			handleFunctions.UserAPI.UpdateUser,
		},
		{
			"DeleteUser",
			http.MethodDelete,
			"/api/users/:id",
			handleFunctions.UserAPI.DeleteUser,
		},
	}
}

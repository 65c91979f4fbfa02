package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.unknownEndpointResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	// blogs
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.getAllBlogsHandler)
	router.HandlerFunc(http.MethodGet, "/api/blogs/stats", app.blogStatsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodPut, "/api/blogs/:id", app.updateBlogHandler)
	router.HandlerFunc(http.MethodDelete, "/api/blogs/:id", app.deleteBlogHandler)

	// users
	router.HandlerFunc(http.MethodGet, "/api/users", app.getAllUsersHandler)
	router.HandlerFunc(http.MethodPost, "/api/users", app.registerUserHandler)

	// login
	router.HandlerFunc(http.MethodPost, "/api/login", app.loginUserHandler)

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}

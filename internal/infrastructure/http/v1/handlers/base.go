// Package handlers implements the HTTP endpoints of the v1 API.
// Handlers bind and validate requests, delegate to domain services, and
// register errors for the error middleware to render.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopledger/internal/core/apperror"
	appctx "shopledger/internal/core/context"
	"shopledger/internal/core/id"
)

// Base carries shared handler helpers.
type Base struct{}

// BindJSON binds the request body and maps binding failures to a
// validation error.
func (Base) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperror.NewValidation("invalid request body").WithCause(err))
		c.Abort()
		return false
	}
	return true
}

// BindQuery binds query parameters.
func (Base) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		_ = c.Error(apperror.NewValidation("invalid query parameters").WithCause(err))
		c.Abort()
		return false
	}
	return true
}

// PathID parses the named path parameter as an id.
func (Base) PathID(c *gin.Context, name string) (id.ID, bool) {
	parsed, err := id.Parse(c.Param(name))
	if err != nil {
		_ = c.Error(apperror.NewValidation("invalid id").WithDetail("param", name))
		c.Abort()
		return id.Nil(), false
	}
	return parsed, true
}

// Error registers an error and aborts; the error middleware renders it.
func (Base) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// CallerID returns the authenticated caller's id. The auth middleware
// guarantees a user is present on protected routes.
func (b Base) CallerID(c *gin.Context) (id.ID, bool) {
	raw := appctx.GetUserID(c.Request.Context())
	if raw == "" {
		b.Error(c, apperror.NewUnauthorized("authentication required"))
		return id.Nil(), false
	}
	parsed, err := id.Parse(raw)
	if err != nil {
		b.Error(c, apperror.NewUnauthorized("invalid caller identity"))
		return id.Nil(), false
	}
	return parsed, true
}

// OK writes a 200 response.
func (Base) OK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// Created writes a 201 response.
func (Base) Created(c *gin.Context, body any) {
	c.JSON(http.StatusCreated, body)
}

// NoContent writes a 204 response.
func (Base) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

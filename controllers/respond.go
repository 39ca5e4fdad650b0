package controllers

import (
	stderrors "errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sapphire-cosmetics/storefront/clients"
	"github.com/sapphire-cosmetics/storefront/errors"
	"github.com/sapphire-cosmetics/storefront/services"
)

// respondAPIError maps remote API failures onto storefront responses.
// A rejected credential clears the session and forces re-authentication,
// regardless of which view triggered the call.
func respondAPIError(c *gin.Context, sessions *services.SessionService, err error) {
	if stderrors.Is(err, clients.ErrCredentialRejected) {
		sessions.HandleCredentialRejection(c.Request.Context())
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "Session expired, please log in again",
			"redirect": "/login",
		})
		return
	}

	var status *clients.StatusError
	if stderrors.As(err, &status) {
		message := status.Message
		if message == "" {
			message = errors.ErrUpstream.Message
		}
		appErr := errors.New(status.Code, message, nil)
		c.JSON(appErr.Code, appErr)
		return
	}

	var request *clients.RequestError
	if stderrors.As(err, &request) {
		log.Printf("upstream request failed: %v", request)
		c.JSON(errors.ErrUpstream.Code, errors.ErrUpstream)
		return
	}

	// Anything unclassified goes through the error middleware, which
	// renders the standard envelope.
	log.Printf("unexpected error: %v", err)
	_ = c.Error(errors.New(errors.ErrInternalServer.Code, errors.ErrInternalServer.Message, err))
}

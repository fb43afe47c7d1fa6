package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"glnc_delivery/internal/middleware"
)

func (ac *AdminController) ListApiKeys(c *gin.Context) {
	keys, err := ac.svc.ApiKeys.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetching API keys")
		return
	}
	c.JSON(http.StatusOK, gin.H{"api_keys": keys})
}

func (ac *AdminController) GenerateApiKey(c *gin.Context) {
	key, err := ac.svc.ApiKeys.Generate(c.Request.Context())
	if err != nil {
		respondError(c, err, "generating the API key")
		return
	}
	fields := logrus.Fields{"api_key_id": key.ID}
	if u := middleware.CurrentUser(c); u != nil {
		fields["user_id"] = u.ID
	}
	logrus.WithFields(fields).Info("API key generated")
	c.JSON(http.StatusCreated, gin.H{"api_key": key})
}

func (ac *AdminController) DeleteApiKey(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ac.svc.ApiKeys.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "deleting the API key")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "API key deleted successfully."})
}

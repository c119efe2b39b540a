package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github/itish2003/growthvision/models"
	"github/itish2003/growthvision/services"
)

var about = models.AboutResponse{
	Title:          "Growthvision Pathum Chatbot",
	Description:    "Welcome to the Growthvision Pathum Chatbot!\n\nThis Chatbot is part of Project for DSI314 .",
	ImageCaption:   "Pathum Thani",
	ChatGuidelines: services.ChatGuidelines,
}

// GetAbout is the handler for GET /api/v1/about.
func GetAbout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, about)
}

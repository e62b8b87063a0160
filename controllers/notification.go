package controllers

import (
	"net/http"

	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

// GetNotifications lists the caller's notifications, newest first
func GetNotifications(c *gin.Context) {
	profile := currentProfile(c)

	notifications, err := services.NewNotificationService(nil).ListForRecipient(profile.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unread": unread})
}

// MarkNotificationRead marks one notification as read
func MarkNotificationRead(c *gin.Context) {
	profile := currentProfile(c)

	if err := services.NewNotificationService(nil).MarkRead(c.Param("id"), profile.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MarkAllNotificationsRead marks every unread notification as read
func MarkAllNotificationsRead(c *gin.Context) {
	profile := currentProfile(c)

	if err := services.NewNotificationService(nil).MarkAllRead(profile.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

package worker

import (
	"github.com/hubex/account-service/internal/service"
)

// StartMailWorker registers the mail notification handlers.
func StartMailWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

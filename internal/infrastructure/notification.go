package infrastructure

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yourusername/yt-grab-go/internal/domain"
)

// NotificationService posts desktop notifications for terminal pipeline
// states. Notification failures are logged, never returned to the pipeline.
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		config: config,
		logger: logger,
	}
}

// NotifyGrabCompleted announces a finished grab with the video title and
// where the output landed
func (n *NotificationService) NotifyGrabCompleted(title, outputPath string) {
	n.send("Grab Completed",
		fmt.Sprintf("%s\nSaved as %s", trimForDisplay(title, 48), filepath.Base(outputPath)))
}

// NotifyGrabFailed announces a failed grab with the URL and the cause
func (n *NotificationService) NotifyGrabFailed(url string, err error) {
	n.send("Grab Failed",
		fmt.Sprintf("%s\n%s", trimForDisplay(url, 48), trimForDisplay(err.Error(), 80)))
}

func (n *NotificationService) send(title, message string) {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping", zap.String("title", title))
		return
	}

	name, args, ok := notifyCommand(n.config.Method, title, message)
	if !ok {
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return
	}

	if err := exec.Command(name, args...).Run(); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Error(err))
		return
	}

	n.logger.Debug("Notification sent",
		zap.String("method", n.config.Method),
		zap.String("title", title))
}

// notifyCommand builds the notifier invocation for the configured method.
// Returns ok=false for methods it does not know.
func notifyCommand(method, title, message string) (string, []string, bool) {
	switch method {
	case "osascript":
		// Titles come from video metadata; %q escapes quotes, backslashes
		// and newlines the same way AppleScript string literals expect them
		script := fmt.Sprintf("display notification %q with title %q", message, title)
		return "osascript", []string{"-e", script}, true
	case "notify-send":
		return "notify-send", []string{title, message}, true
	default:
		return "", nil, false
	}
}

// trimForDisplay caps a string at max runes for notification bodies
func trimForDisplay(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

package routes

import "github.com/Nguyeniris123/JobApp/services"

// Shared collaborators, wired once at startup from main.
var (
	Verifier *services.ImageVerifier
	Notifier *services.NotificationService
)

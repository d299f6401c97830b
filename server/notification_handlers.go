package server

import (
	"net/http"

	"github.com/codequest-dev/codequest-server/accounts"
)

type notificationsRequest struct {
	Action          string  `json:"action"`
	NotificationID  int64   `json:"notificationId"`
	NotificationIDs []int64 `json:"notificationIds"`
}

// NotificationsHandler mutates the authenticated account's notification list
// (PUT /auth/notifications). Supported actions: mark_read, mark_all_read,
// clear_all.
func (s *Server) NotificationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())

		var req notificationsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid action")
			return
		}

		account, err := s.repos.Accounts.GetByID(r.Context(), identity.UserID)
		if err != nil {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}

		notifications := account.Notifications
		switch req.Action {
		case "mark_read":
			for i := range notifications {
				if notifications[i].ID == req.NotificationID {
					notifications[i].Read = true
				}
			}
		case "mark_all_read":
			ids := idSet(req.NotificationIDs)
			for i := range notifications {
				if _, ok := ids[notifications[i].ID]; ok {
					notifications[i].Read = true
				}
			}
		case "clear_all":
			ids := idSet(req.NotificationIDs)
			kept := make([]accounts.Notification, 0, len(notifications))
			for _, notification := range notifications {
				if _, ok := ids[notification.ID]; !ok {
					kept = append(kept, notification)
				}
			}
			notifications = kept
		default:
			writeError(w, http.StatusBadRequest, "Invalid action")
			return
		}

		if err := s.repos.Accounts.UpdateNotifications(r.Context(), identity.UserID, notifications); err != nil {
			writeError(w, http.StatusInternalServerError, "Notification update failed")
			return
		}

		user, err := s.repos.Users.GetByID(r.Context(), identity.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Notification update failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"user": userWithNotifications{User: user, Notifications: notifications},
		})
	}
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

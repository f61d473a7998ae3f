package server

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"priceghost/internal/model"
)

const alertListLimit = 50

func (s Server) alertGetAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("alertGetAll: Error getting userContext, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		as, err := s.DB.AlertsFindByUser(r.Context(), uc.user.ID, alertListLimit)
		if err != nil {
			s.Logger.Errorf("alertGetAll: Error finding Alerts, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if as == nil {
			as = []model.Alert{}
		}
		s.writeJsonResponse(w, as, http.StatusOK)
	}
}

// alertRead marks alerts as read. An empty or omitted alert_ids marks all
// of the user's alerts.
func (s Server) alertRead() http.HandlerFunc {
	type request struct {
		AlertIDs []string `json:"alert_ids"`
	}
	type response struct {
		Success bool  `json:"success"`
		Updated int64 `json:"updated"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("alertRead: Error getting userContext, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := request{}
		if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("alertRead: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		alertIDs := make([]primitive.ObjectID, 0, len(req.AlertIDs))
		for _, idStr := range req.AlertIDs {
			id, err := primitive.ObjectIDFromHex(idStr)
			if err != nil {
				http.Error(w, "Invalid alert_id: "+idStr, http.StatusBadRequest)
				return
			}
			alertIDs = append(alertIDs, id)
		}

		updated, err := s.DB.AlertsMarkRead(r.Context(), uc.user.ID, alertIDs)
		if err != nil {
			s.Logger.Errorf("alertRead: Error marking Alerts read, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response{Success: true, Updated: updated}, http.StatusOK)
	}
}

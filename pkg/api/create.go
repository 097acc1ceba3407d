package api

import (
	"encoding/json"
	"net/http"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

// maxBodyBytes caps a create request body.
const maxBodyBytes = 1 << 20

// HandleCreate returns the POST handler storing one record of kind. The body
// must be a JSON object; anything the store rejects is reported with the
// kind's static failure message.
func (h *Handler) HandleCreate(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := h.log.WithField("kind", kind.Name)

		var fields map[string]interface{}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&fields); err != nil || fields == nil {
			log.WithError(err).Warn("Decoding body failed")
			WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		created, err := h.records.Create(r.Context(), kind, fields)
		if err != nil {
			log.WithError(err).Error("Create failed")
			WriteJSONError(w, http.StatusInternalServerError, kind.FailedMessage)
			return
		}

		log.WithField("id", created[domain.IDField]).Info("Record created")
		WriteJSON(w, http.StatusCreated, MessageResponse{Message: kind.CreatedMessage})
	}
}

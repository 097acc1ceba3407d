package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/adfharrison1/go-bloodbank/pkg/domain"
)

// HandleList returns the GET handler listing every record of kind.
func (h *Handler) HandleList(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := h.log.WithField("kind", kind.Name)

		docs, err := h.records.List(r.Context(), kind)
		if err != nil {
			log.WithError(err).Error("List failed")
			WriteJSONError(w, http.StatusInternalServerError, "Failed to fetch "+kind.Plural)
			return
		}

		log.WithFields(logrus.Fields{"count": len(docs)}).Debug("Listed records")
		WriteJSON(w, http.StatusOK, docs)
	}
}

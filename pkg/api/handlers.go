package api

import (
	"github.com/sirupsen/logrus"

	"github.com/adfharrison1/go-bloodbank/pkg/records"
)

// Handler provides HTTP handlers for the record API
type Handler struct {
	records *records.Store
	log     logrus.FieldLogger
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(store *records.Store, log logrus.FieldLogger) *Handler {
	return &Handler{
		records: store,
		log:     log,
	}
}

package main

import (
	"github.com/hibiken/asynq"

	enquiryJob "github.com/aHaldin/pickmyartist/internal/domains/enquiry/job"
	"github.com/aHaldin/pickmyartist/internal/shared"
	"github.com/aHaldin/pickmyartist/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	sendEnquiryEmail *enquiryJob.SendEnquiryEmailHandler
	pruneArchived    *enquiryJob.PruneArchivedHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sendEnquiryEmail: enquiryJob.NewSendEnquiryEmailHandler(c.EnquiryService),
		pruneArchived:    enquiryJob.NewPruneArchivedHandler(c.EnquiryRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendEnquiryEmail, h.sendEnquiryEmail.ProcessTask)
	mux.HandleFunc(shared.TypePruneArchivedEnquiries, h.pruneArchived.ProcessTask)
}

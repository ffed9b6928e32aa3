package shared

// Asynq task types. Naming convention: "<domain>:<action>".
const (
	TypeSendEnquiryEmail       = "enquiry:send_email"
	TypePruneArchivedEnquiries = "enquiry:prune_archived"
)

// Queue names, matched against the worker's queue priority map.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// SendEnquiryEmailPayload is the payload for enquiry:send_email.
type SendEnquiryEmailPayload struct {
	EnquiryID string `json:"enquiryId"`
}

// PruneArchivedEnquiriesPayload is the payload for enquiry:prune_archived.
type PruneArchivedEnquiriesPayload struct {
	OlderThanDays int `json:"older_than_days"`
}

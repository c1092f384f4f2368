package domain

import "time"

// AuditAction identifies the operation an audit record describes
type AuditAction string

const (
	ActionCreateAppointment  AuditAction = "CreateAppointment"
	ActionCancelAppointment  AuditAction = "CancelAppointment"
	ActionCreateAvailability AuditAction = "CreateAvailability"
	ActionDeleteAvailability AuditAction = "DeleteAvailability"
)

// Audited entity types
const (
	EntityAppointment      = "Appointment"
	EntityAvailabilitySlot = "AvailabilitySlot"
)

// AuditRecord is the structured audit fact emitted by mutating operations.
// It is persisted in the same transaction as the mutation it describes; a
// failed audit write aborts the whole operation.
type AuditRecord struct {
	ID          int64
	Action      AuditAction
	EntityType  string
	EntityID    int64
	Details     string
	ActorUserID *int64
	CreatedAt   time.Time
}

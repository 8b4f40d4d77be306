//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// AuditAction identifies the operator action recorded in the audit trail.
type AuditAction string

const (
	AuditActionLoginBegin    AuditAction = "login_begin"
	AuditActionVerified      AuditAction = "verified"
	AuditActionVerifyFailed  AuditAction = "verify_failed"
	AuditActionLogout        AuditAction = "logout"
	AuditActionProjectSwitch AuditAction = "project_switch"
	AuditActionEntityCreate  AuditAction = "entity_create"
	AuditActionEntityUpdate  AuditAction = "entity_update"
)

// Valid reports whether the audit action is a known value.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionLoginBegin, AuditActionVerified, AuditActionVerifyFailed,
		AuditActionLogout, AuditActionProjectSwitch,
		AuditActionEntityCreate, AuditActionEntityUpdate:
		return true
	default:
		return false
	}
}

// AuditEvent is one recorded operator action.
type AuditEvent struct {
	ID        string      `json:"id"         db:"id"`
	SessionID string      `json:"session_id" db:"session_id"`
	Actor     string      `json:"actor"      db:"actor"`
	Action    AuditAction `json:"action"     db:"action"`
	Entity    string      `json:"entity,omitempty"    db:"entity"`
	EntityID  string      `json:"entity_id,omitempty" db:"entity_id"`
	Detail    string      `json:"detail,omitempty"    db:"detail"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// RecordAuditRequest represents parameters to record an AuditEvent.
type RecordAuditRequest struct {
	SessionID string
	Actor     string
	Action    AuditAction
	Entity    string
	EntityID  string
	Detail    string
}

// Validate checks the request for required fields.
func (r *RecordAuditRequest) Validate() error {
	if strings.TrimSpace(r.SessionID) == "" {
		return errors.New("session id is required")
	}
	if !r.Action.Valid() {
		return errors.New("unknown audit action")
	}
	return nil
}

package domain

import "errors"

// Sentinel errors returned by the membership service and its stores.
// Callers match them with errors.Is; messages may be wrapped with detail.
var (
	ErrValidation          = errors.New("validation error")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrOwnerProtected      = errors.New("club owner cannot be modified")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyMember       = errors.New("already a club member")
	ErrDuplicateInvitation = errors.New("a pending invitation already exists for this email")
	ErrInvitationExpired   = errors.New("invitation has expired")
	ErrUnavailable         = errors.New("membership storage unavailable")
	ErrClubExists          = errors.New("club already exists")
)

// ErrorKind is a stable, machine-readable name for a domain error.
type ErrorKind string

const (
	KindValidation          ErrorKind = "validation_error"
	KindPermissionDenied    ErrorKind = "permission_denied"
	KindOwnerProtected      ErrorKind = "owner_protected"
	KindNotFound            ErrorKind = "not_found"
	KindAlreadyMember       ErrorKind = "already_member"
	KindDuplicateInvitation ErrorKind = "duplicate_invitation"
	KindInvitationExpired   ErrorKind = "invitation_expired"
	KindUnavailable         ErrorKind = "unavailable"
	KindClubExists          ErrorKind = "club_exists"
	KindUnknown             ErrorKind = "unknown"
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrValidation, KindValidation},
	{ErrPermissionDenied, KindPermissionDenied},
	{ErrOwnerProtected, KindOwnerProtected},
	{ErrNotFound, KindNotFound},
	{ErrAlreadyMember, KindAlreadyMember},
	{ErrDuplicateInvitation, KindDuplicateInvitation},
	{ErrInvitationExpired, KindInvitationExpired},
	{ErrUnavailable, KindUnavailable},
	{ErrClubExists, KindClubExists},
}

// ErrorKindOf returns the kind of the first domain sentinel found in err's
// chain, or KindUnknown. A nil error has no kind.
func ErrorKindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}

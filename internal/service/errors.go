package service

import "errors"

var (
	ErrUserNotFound          = errors.New("user with given username not found")
	ErrAuthorNotFound        = errors.New("bid author with given username not found")
	ErrTenderNotFound        = errors.New("tender not found")
	ErrBidNotFound           = errors.New("bid not found")
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrTenderVersionNotFound = errors.New("tender version not found")
	ErrBidVersionNotFound    = errors.New("bid version not found")

	ErrNotResponsible     = errors.New("user is not responsible for the organization")
	ErrTenderAccessDenied = errors.New("user doesn't have sufficient rights to access the tender")
	ErrBidAccessDenied    = errors.New("user doesn't have sufficient rights to access the bid")
)

package model

import "github.com/google/uuid"

// Principal is the authenticated operator extracted from the access token.
type Principal struct {
	UserID uuid.UUID
	Name   string
}

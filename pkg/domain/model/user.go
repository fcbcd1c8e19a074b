package model

import (
	"time"

	"github.com/crivello-lab/crivello/pkg/domain/types"
)

// User is an authenticated account. HashedPassword stores a bcrypt hash of
// the SHA-256 digest of the password (the pre-hash sidesteps bcrypt's 72-byte
// input limit).
type User struct {
	ID             types.UserID
	Email          string
	HashedPassword string
	CreatedAt      time.Time
}

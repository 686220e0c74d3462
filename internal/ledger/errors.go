package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// UnknownAccountError reports a record referencing an account id absent
// from the snapshot. The engine never self-heals a referential
// violation; the store must cascade-delete records when an account is
// removed.
type UnknownAccountError struct {
	ID uuid.UUID
}

func (e UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account %s", e.ID)
}

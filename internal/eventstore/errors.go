package eventstore

import (
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

// Sentinel failures of the history ledger. Returned errors carry the sentinel's
// message and CategoryEventStore; compare messages, not identity.
var (
	ErrDatabaseOpenFailed     = errors.EventStoreError("could not open build history").Build()
	ErrInitializeSchemaFailed = errors.EventStoreError("could not create build history tables").Build()
	ErrEventAppendFailed      = errors.EventStoreError("could not record build entry").Build()
	ErrEventQueryFailed       = errors.EventStoreError("could not read build history").Build()
	ErrUnmarshalPayloadFailed = errors.EventStoreError("build history entry is corrupt").Build()
)

func storeErr(sentinel *errors.ClassifiedError, cause error) error {
	return sentinel.Wrap(cause).Build()
}

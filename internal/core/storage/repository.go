package storage

import (
	"context"
	"errors"

	v1 "github.com/still-asking/sapn-generator/internal/api/v1"
)

var (
	// ErrConflict is returned when a write would give two parts the same
	// identifier. Every backend maps its uniqueness violation to this value.
	ErrConflict = errors.New("identifier already assigned to another part")

	// ErrPartNotFound is returned when the referenced part does not exist.
	ErrPartNotFound = errors.New("part not found")
)

// PartStore is the host's part storage.
type PartStore interface {
	// CreatePart inserts part and populates ID and timestamps.
	// A non-empty IPN that collides with another part returns ErrConflict.
	CreatePart(ctx context.Context, part *v1.Part) error

	// GetPart returns ErrPartNotFound when no part has the given id.
	GetPart(ctx context.Context, id int64) (*v1.Part, error)

	// UpdatePart replaces name, description and parameters. The IPN is only
	// written through IdentifierStore.
	UpdatePart(ctx context.Context, part *v1.Part) error

	// ListPartsWithoutIdentifier returns up to limit parts with an empty IPN and
	// id > afterID, ordered by id.
	ListPartsWithoutIdentifier(ctx context.Context, afterID int64, limit int) ([]*v1.Part, error)
}

// IdentifierTx is the view of the store inside one allocation attempt.
type IdentifierTx interface {
	// CurrentIdentifier re-reads the part's IPN. Backends that support it
	// lock the part row for the rest of the transaction.
	CurrentIdentifier(ctx context.Context, partID int64) (string, error)

	// IdentifiersWithPrefix returns every stored IPN beginning with prefix.
	IdentifiersWithPrefix(ctx context.Context, prefix string) ([]string, error)

	// AssignIdentifier sets the part's IPN. A uniqueness violation may be
	// reported here or at commit.
	AssignIdentifier(ctx context.Context, partID int64, ipn string) error
}

// IdentifierStore runs allocation attempts atomically.
type IdentifierStore interface {
	// RunInTx executes fn inside one transaction and commits when fn returns
	// nil. Any error from fn rolls back. A uniqueness violation raised by fn or
	// by the commit is returned as an error matching ErrConflict.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx IdentifierTx) error) error
}

// Store is the full backend contract used by the service.
type Store interface {
	PartStore
	IdentifierStore
	Ping(ctx context.Context) error
	Close() error
}

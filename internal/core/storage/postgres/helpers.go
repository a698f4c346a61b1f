package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	v1 "github.com/still-asking/sapn-generator/internal/api/v1"
	"github.com/still-asking/sapn-generator/internal/core/storage"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = pq.ErrorCode("23505")

// marshalParameters encodes part parameters for the JSONB column.
// Nil or empty parameters produce nil (SQL NULL) rather than JSON "null".
func marshalParameters(params map[string]string) ([]byte, error) {
	if len(params) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parameters: %w", err)
	}
	return b, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanPartRow scans a parts row. Compatible with both sql.Row and sql.Rows.
func scanPartRow(row scanner) (*v1.Part, error) {
	var p v1.Part
	var paramsJSON []byte

	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.IPN,
		&paramsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(paramsJSON) > 0 {
		if err := json.Unmarshal(paramsJSON, &p.Parameters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal parameters: %w", err)
		}
	}
	return &p, nil
}

// mapError turns a unique_violation into storage.ErrConflict while keeping
// the driver error in the chain.
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %w", storage.ErrConflict, err)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// prefixPattern builds a LIKE pattern matching values that start with prefix.
func prefixPattern(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}

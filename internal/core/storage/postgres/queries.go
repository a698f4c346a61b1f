package postgres

// SQL for part and identifier storage.

const (
	// queryInsertPart inserts a part. A non-empty ipn is subject to parts_ipn_unique.
	queryInsertPart = `
		INSERT INTO parts (name, description, ipn, parameters, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	queryGetPart = `
		SELECT id, name, description, ipn, parameters, created_at, updated_at
		FROM parts
		WHERE id = $1
	`

	// queryUpdatePart never touches ipn; identifiers are written only by allocation.
	queryUpdatePart = `
		UPDATE parts
		SET name = $2, description = $3, parameters = $4, updated_at = $5
		WHERE id = $1
		RETURNING ipn, created_at
	`

	// queryListPartsWithoutIdentifier pages through unassigned parts by id.
	// Served by the parts_missing_ipn partial index.
	queryListPartsWithoutIdentifier = `
		SELECT id, name, description, ipn, parameters, created_at, updated_at
		FROM parts
		WHERE ipn = '' AND id > $1
		ORDER BY id ASC
		LIMIT $2
	`

	// querySelectIdentifierForUpdate locks the part row so two events for the
	// same part serialize instead of both assigning.
	querySelectIdentifierForUpdate = `
		SELECT ipn
		FROM parts
		WHERE id = $1
		FOR UPDATE
	`

	// querySelectIdentifiersWithPrefix scans one partition.
	// Served by parts_ipn_prefix (text_pattern_ops).
	querySelectIdentifiersWithPrefix = `
		SELECT ipn
		FROM parts
		WHERE ipn LIKE $1 ESCAPE '\'
	`

	queryAssignIdentifier = `
		UPDATE parts
		SET ipn = $2, updated_at = $3
		WHERE id = $1
	`
)

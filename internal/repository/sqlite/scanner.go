package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanEntry scans a single key-value entry from a database row
func ScanEntry(scanner Scanner) (*Entry, error) {
	var (
		key       string
		value     string
		updatedAt string
	)
	if err := scanner.Scan(&key, &value, &updatedAt); err != nil {
		return nil, err
	}

	ts, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Key:       key,
		Value:     []byte(value),
		UpdatedAt: ts,
	}, nil
}

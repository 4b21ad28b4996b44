package domain

// GrabRepository defines the interface for grab history persistence
type GrabRepository interface {
	// Create creates a new grab record
	Create(record *GrabRecord) error

	// Update updates an existing grab record
	Update(record *GrabRecord) error

	// Delete deletes a grab record by ID
	Delete(id string) error

	// FindByID finds a grab record by ID
	FindByID(id string) (*GrabRecord, error)

	// FindByStatus finds grab records by status, newest first
	FindByStatus(status GrabStatus) ([]*GrabRecord, error)

	// FindRecent finds the most recent grab records, newest first
	FindRecent(limit int) ([]*GrabRecord, error)

	// Count returns the total number of grab records
	Count() (int64, error)

	// CountByStatus returns the number of grab records by status
	CountByStatus(status GrabStatus) (int64, error)

	// GetStats returns grab history statistics
	GetStats() (*GrabStats, error)
}

// GrabStats represents grab history statistics
type GrabStats struct {
	Total     int64 `json:"total"`
	Running   int64 `json:"running"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}

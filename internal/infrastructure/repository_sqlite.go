package infrastructure

import (
	"fmt"

	"github.com/yourusername/yt-grab-go/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteGrabRepository implements GrabRepository using SQLite
type SQLiteGrabRepository struct {
	db *gorm.DB
}

// NewSQLiteGrabRepository creates a new SQLite repository
func NewSQLiteGrabRepository(dbPath string) (*SQLiteGrabRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.GrabRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteGrabRepository{db: db}, nil
}

// Create creates a new grab record
func (r *SQLiteGrabRepository) Create(record *domain.GrabRecord) error {
	return r.db.Create(record).Error
}

// Update updates an existing grab record
func (r *SQLiteGrabRepository) Update(record *domain.GrabRecord) error {
	return r.db.Save(record).Error
}

// Delete deletes a grab record by ID
func (r *SQLiteGrabRepository) Delete(id string) error {
	return r.db.Delete(&domain.GrabRecord{}, "id = ?", id).Error
}

// FindByID finds a grab record by ID
func (r *SQLiteGrabRepository) FindByID(id string) (*domain.GrabRecord, error) {
	var record domain.GrabRecord
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByStatus finds grab records by status, newest first
func (r *SQLiteGrabRepository) FindByStatus(status domain.GrabStatus) ([]*domain.GrabRecord, error) {
	var records []*domain.GrabRecord
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&records).Error
	return records, err
}

// FindRecent finds the most recent grab records, newest first
func (r *SQLiteGrabRepository) FindRecent(limit int) ([]*domain.GrabRecord, error) {
	var records []*domain.GrabRecord
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

// Count returns the total number of grab records
func (r *SQLiteGrabRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.GrabRecord{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of grab records by status
func (r *SQLiteGrabRepository) CountByStatus(status domain.GrabStatus) (int64, error) {
	var count int64
	err := r.db.Model(&domain.GrabRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// GetStats returns grab history statistics
func (r *SQLiteGrabRepository) GetStats() (*domain.GrabStats, error) {
	stats := &domain.GrabStats{}

	if err := r.db.Model(&domain.GrabRecord{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	statusCounts := []struct {
		Status domain.GrabStatus
		Count  int64
	}{}

	if err := r.db.Model(&domain.GrabRecord{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}

	for _, sc := range statusCounts {
		switch sc.Status {
		case domain.StatusRunning:
			stats.Running = sc.Count
		case domain.StatusCompleted:
			stats.Completed = sc.Count
		case domain.StatusFailed:
			stats.Failed = sc.Count
		}
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteGrabRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

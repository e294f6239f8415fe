package models

import "time"

// Backup tracks snapshot files written to the backup directory.
type Backup struct {
	ID        uint   `gorm:"primaryKey"`
	CreatedBy uint   `gorm:"index;not null"`
	FileName  string `gorm:"size:255;not null"`
	FilePath  string `gorm:"size:512;not null"`
	Size      int64
	CreatedAt time.Time
}

package models

import (
	"gorm.io/datatypes"
)

type CheckStatus string

const (
	CheckStatusProgress CheckStatus = "In progress"
	CheckStatusVerified CheckStatus = "Verified!"
	CheckStatusFailed   CheckStatus = "Failed"
	CheckStatusTimeout  CheckStatus = "Timeout"
)

// CodeCheck holds the outcome of linting one uploaded file. There is at
// most one current check per file: reruns look up the existing record and
// overwrite its result. IsSent flips to true once the notifier has
// successfully emailed the owner.
//
// Result is only meaningful when Status is Verified; on Failed it carries
// the error detail instead of findings.
type CodeCheck struct {
	BaseModel
	FileID string        `gorm:"not null;index"`
	File   *UploadedFile `gorm:"foreignKey:FileID"`
	Status CheckStatus   `gorm:"type:varchar(15);default:'In progress'"`
	IsSent bool          `gorm:"default:false"`
	Result datatypes.JSON
}

package models

// UploadedFile is one Python source file a user submitted for checking.
//
// Path is the stored location under the storage base, with a timestamp
// prefix on the basename. FileName is the display name with that prefix
// stripped. IsNew marks files awaiting the next scheduled check; the
// checker clears it once a check completes. The owner's email is not
// copied here, the notifier resolves it through the User relation.
type UploadedFile struct {
	BaseModel
	UserID      string `gorm:"not null;index"`
	User        *User  `gorm:"foreignKey:UserID"`
	Path        string `gorm:"not null"`
	FileName    string
	Description string
	Status      string `gorm:"type:varchar(15);default:'success'"`
	IsNew       bool   `gorm:"default:true"`

	Checks []CodeCheck `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
}

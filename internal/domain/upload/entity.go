package upload

import "strings"

// File is one uploaded blob's metadata row. Filename is the generated storage
// name, FilePath the full path the blob was written to.
type File struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Filename string `gorm:"column:filename;size:255;not null" json:"filename"`
	FilePath string `gorm:"column:file_path;size:1024;not null" json:"file_path"`
}

func (File) TableName() string { return "uploaded_file" }

// OriginalName strips the random token from the storage name, leaving the
// sanitized name the uploader supplied.
func (f File) OriginalName() string {
	if _, name, ok := strings.Cut(f.Filename, "_"); ok && name != "" {
		return name
	}
	return f.Filename
}

package entity

// File 업로드된 파일 메타데이터. 소유자는 model_name/model_id 쌍으로 식별합니다.
type File struct {
	Record
	FileName    string  `gorm:"size:255;not null;index" json:"file_name"`
	FilePath    string  `gorm:"size:1000;not null;index" json:"file_path"`
	FileSize    int64   `json:"file_size"`
	ModelID     *string `gorm:"index" json:"model_id"`
	ModelName   string  `gorm:"size:255;not null;index" json:"model_name"`
	URL         string  `gorm:"type:text;not null" json:"url"`
	Description *string `gorm:"type:text" json:"description"`
	Content     *string `gorm:"type:text" json:"content"`
	Label       *string `json:"label"`
}

func (File) TableName() string { return "files" }

func (File) DeletionMode() DeletionMode { return HardDelete }

var fileQuery = QuerySpec{
	Filters:      fields("model_name", "model_id", "label"),
	Search:       fields("file_name", "label"),
	Sorts:        fields("file_name", "file_size"),
	Writable:     fields("label", "description", "content", "url", "position"),
	Scope:        []string{"model_name", "model_id"},
	DefaultSort:  "position",
	DefaultOrder: "asc",
}

func (File) QuerySpec() QuerySpec { return fileQuery }

package entity

// Tag 소유자 종류별 태그
type Tag struct {
	Record
	Name      string `gorm:"not null;index" json:"name"`
	ModelType string `gorm:"not null;index" json:"model_type"`
}

func (Tag) TableName() string { return "tags" }

func (Tag) DeletionMode() DeletionMode { return SoftDelete }

var tagQuery = QuerySpec{
	Filters:  fields("name", "model_type"),
	Search:   fields("name"),
	Sorts:    fields("name", "model_type"),
	Writable: fields("name", "model_type", "position"),
}

func (Tag) QuerySpec() QuerySpec { return tagQuery }

// TagAssociation 태그와 임의 엔티티 간 다형성 연결
type TagAssociation struct {
	Record
	EntityID  string `gorm:"not null;index" json:"entity_id"`
	ModelType string `gorm:"not null;index" json:"model_type"`
	TagID     string `gorm:"type:varchar(32);not null;index" json:"tag_id"`
	Tag       *Tag   `gorm:"foreignKey:TagID" json:"-"`
}

func (TagAssociation) TableName() string { return "tag_association" }

func (TagAssociation) DeletionMode() DeletionMode { return SoftDelete }

var tagAssociationQuery = QuerySpec{
	Filters:  fields("entity_id", "model_type", "tag_id"),
	Writable: fields("position"),
}

func (TagAssociation) QuerySpec() QuerySpec { return tagAssociationQuery }

package entity

// Category 소유자 종류별 카테고리
type Category struct {
	Record
	Name        string  `gorm:"not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	Slug        *string `gorm:"uniqueIndex" json:"slug"`
	ModelType   string  `gorm:"not null;index" json:"model_type"`
}

func (Category) TableName() string { return "categories" }

func (Category) DeletionMode() DeletionMode { return SoftDelete }

var categoryQuery = QuerySpec{
	Filters:    fields("name", "model_type", "slug"),
	Search:     fields("name"),
	Sorts:      fields("name", "model_type"),
	Writable:   fields("name", "description", "slug", "model_type", "position"),
	SlugColumn: "slug",
}

func (Category) QuerySpec() QuerySpec { return categoryQuery }

// CategoryAssociation 카테고리와 임의 엔티티 간 다형성 연결
type CategoryAssociation struct {
	Record
	EntityID   string    `gorm:"not null;index" json:"entity_id"`
	ModelType  string    `gorm:"not null;index" json:"model_type"`
	CategoryID string    `gorm:"type:varchar(32);not null;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (CategoryAssociation) TableName() string { return "category_association" }

func (CategoryAssociation) DeletionMode() DeletionMode { return SoftDelete }

var categoryAssociationQuery = QuerySpec{
	Filters:  fields("entity_id", "model_type", "category_id"),
	Writable: fields("position"),
}

func (CategoryAssociation) QuerySpec() QuerySpec { return categoryAssociationQuery }

package entity

// Blog 블로그 글
type Blog struct {
	Record
	Title         string  `gorm:"not null" json:"title" validate:"required"`
	Slug          string  `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt       *string `gorm:"type:text" json:"excerpt"`
	Content       *string `gorm:"type:text" json:"content"`
	CoverImageURL *string `json:"cover_image_url"`
	IsPublished   bool    `gorm:"not null;default:false" json:"is_published"`
}

func (Blog) TableName() string { return "blogs" }

func (Blog) DeletionMode() DeletionMode { return SoftDelete }

var blogQuery = QuerySpec{
	Filters:    fields("slug", "is_published"),
	Search:     fields("title", "excerpt"),
	Sorts:      fields("title"),
	Writable:   fields("title", "slug", "excerpt", "content", "cover_image_url", "is_published", "position"),
	SlugColumn: "slug",
}

func (Blog) QuerySpec() QuerySpec { return blogQuery }

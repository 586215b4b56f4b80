package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultCategory = "web-development"
	DefaultLevel    = "Beginner"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title       string      `gorm:"size:255;not null;index" json:"title"`
	Description string      `gorm:"type:text;not null" json:"description"`
	Instructor  string      `gorm:"size:255;not null;index" json:"instructor"`
	Price       float64     `gorm:"not null;default:0" json:"price"`
	Category    string      `gorm:"size:100;not null;index" json:"category"`
	Level       string      `gorm:"size:50" json:"level"`
	Thumbnail   string      `gorm:"size:512" json:"thumbnail"`
	TagList     []CourseTag `gorm:"foreignKey:CourseID" json:"-"`
	Tags        []string    `gorm:"-" json:"tags"`
	Lessons     []Lesson    `gorm:"foreignKey:CourseID" json:"lessons"`
	Batches     []Batch     `gorm:"foreignKey:CourseID" json:"batches"`
}

func (Course) TableName() string {
	return "courses"
}

// AfterFind exposes the preloaded tag rows as plain strings.
func (c *Course) AfterFind(tx *gorm.DB) error {
	c.Tags = make([]string, 0, len(c.TagList))
	for _, t := range c.TagList {
		c.Tags = append(c.Tags, t.Name)
	}
	return nil
}

// SetTags replaces both tag representations.
func (c *Course) SetTags(tags []string) {
	c.Tags = tags
	c.TagList = make([]CourseTag, 0, len(tags))
	for _, t := range tags {
		c.TagList = append(c.TagList, CourseTag{CourseID: c.ID, Name: t})
	}
}

type CourseTag struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	CourseID uint   `gorm:"not null;uniqueIndex:idx_course_tag" json:"-"`
	Name     string `gorm:"size:100;not null;uniqueIndex:idx_course_tag;index" json:"name"`
}

func (CourseTag) TableName() string {
	return "course_tags"
}

type ResourceType string

const (
	ResourceVideo   ResourceType = "video"
	ResourceArticle ResourceType = "article"
	ResourceDocs    ResourceType = "docs"
	ResourceOther   ResourceType = "other"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceVideo, ResourceArticle, ResourceDocs, ResourceOther:
		return true
	}
	return false
}

type LessonResource struct {
	Type  ResourceType `json:"type"`
	Label string       `json:"label"`
	URL   string       `json:"url"`
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID    uint                              `gorm:"not null;index" json:"courseId"`
	Title       string                            `gorm:"size:255;not null" json:"title"`
	VideoURL    string                            `gorm:"size:1024" json:"videoUrl"`
	Description string                            `gorm:"type:text" json:"description"`
	Order       int                               `gorm:"column:sort_order;not null;default:0" json:"order"`
	Resources   datatypes.JSONSlice[LessonResource] `json:"resources"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// swagger:model Batch
type Batch struct {
	BaseModel
	CourseID  uint       `gorm:"not null;index" json:"courseId"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	StartDate time.Time  `gorm:"not null" json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

func (Batch) TableName() string {
	return "batches"
}

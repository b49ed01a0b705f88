package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// Profile 每个用户一行，嵌套列表以 JSON 列存储，
// 整份资料作为一个文档读写
type Profile struct {
	ID             string       `gorm:"primaryKey;size:36" json:"id"`
	UserID         string       `gorm:"size:36;uniqueIndex;not null" json:"-"`
	User           *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Company        string       `gorm:"size:128" json:"company,omitempty"`
	Website        string       `gorm:"size:255" json:"website,omitempty"`
	Location       string       `gorm:"size:128" json:"location,omitempty"`
	Bio            string       `gorm:"type:text" json:"bio,omitempty"`
	Status         string       `gorm:"size:128;not null" json:"status"`
	GitHubUsername string       `gorm:"size:64" json:"githubusername,omitempty"`
	Skills         []string     `gorm:"serializer:json" json:"skills"`
	Social         Social       `gorm:"serializer:json" json:"social"`
	Experience     []Experience `gorm:"serializer:json" json:"experience"`
	Education      []Education  `gorm:"serializer:json" json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"date"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AddExperience 在最前面添加经历并分配新 id
func (p *Profile) AddExperience(e Experience) Experience {
	e.ID = uuid.NewString()
	p.Experience = append([]Experience{e}, p.Experience...)
	return e
}

func (p *Profile) RemoveExperience(id string) error {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i:i], p.Experience[i+1:]...)
			return nil
		}
	}
	return ErrExperienceMissing
}

// AddEducation 在最前面添加教育经历并分配新 id
func (p *Profile) AddEducation(e Education) Education {
	e.ID = uuid.NewString()
	p.Education = append([]Education{e}, p.Education...)
	return e
}

func (p *Profile) RemoveEducation(id string) error {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i:i], p.Education[i+1:]...)
			return nil
		}
	}
	return ErrEducationMissing
}

package models

// CastMemberType tells directors and actors apart
type CastMemberType int

const (
	CastMemberTypeDirector CastMemberType = 1
	CastMemberTypeActor    CastMemberType = 2
)

// CastMemberTypes lists every accepted type value
var CastMemberTypes = []CastMemberType{
	CastMemberTypeDirector,
	CastMemberTypeActor,
}

// IsValid reports whether t is a known cast member type
func (t CastMemberType) IsValid() bool {
	for _, known := range CastMemberTypes {
		if t == known {
			return true
		}
	}
	return false
}

// CastMember is a person credited on videos
type CastMember struct {
	Base
	Name string         `json:"name" gorm:"size:255;not null"`
	Type CastMemberType `json:"type" gorm:"type:smallint;not null"`
}

// NewCastMember returns an empty cast member
func NewCastMember() *CastMember {
	return &CastMember{}
}

// TableName sets the table name for CastMember model
func (CastMember) TableName() string {
	return "cast_members"
}

func (CastMember) ModelName() string {
	return "cast_member"
}

package models

type DutyType struct {
	Model
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description,omitempty"`
}

type Arrangement struct {
	Model
	Name string `json:"name" gorm:"not null;index"`
}

type DutyTypeRequest struct {
	Name        string `json:"name" form:"name" binding:"required" conform:"trim"`
	Description string `json:"description" form:"description" conform:"trim"`
}

type ArrangementRequest struct {
	Name string `json:"name" form:"name" binding:"required" conform:"trim"`
}

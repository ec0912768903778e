package models

import (
	"time"
)

type User struct {
	ID       string    `json:"id" gorm:"primaryKey;type:text"`
	Name     string    `json:"name" gorm:"type:text;not null"`
	Email    string    `json:"email" gorm:"type:text;not null"`
	Password string    `json:"-" gorm:"type:text;not null"`
	CDate    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Group struct {
	Name  string    `json:"name" gorm:"primaryKey;type:text"`
	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// UserGroup is a membership row. Position keeps the user's group order stable.
type UserGroup struct {
	UserID    string `json:"userID" gorm:"type:text;primaryKey"`
	User      User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
	GroupName string `json:"groupName" gorm:"type:text;primaryKey;index"`
	Group     Group  `json:"-" gorm:"foreignKey:GroupName;references:Name;constraint:OnDelete:CASCADE;"`
	Position  int    `json:"position" gorm:"not null;default:0"`
}

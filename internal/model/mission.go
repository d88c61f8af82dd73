package model

import (
	"time"
)

const (
	MissionStatusPlanned   = "PLANNED"
	MissionStatusActive    = "ACTIVE"
	MissionStatusCompleted = "COMPLETED"
	MissionStatusCancelled = "CANCELLED"
)

// Mission owns one booking timeline per resource kind. A booking event
// belongs to exactly one mission.
type Mission struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Name           string     `gorm:"uniqueIndex" json:"name"`
	Token          string     `json:"token"`
	Section        string     `json:"section"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Origin         string     `json:"origin"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	ActualEnd      *time.Time `json:"actual_end"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Stations       []StationEvent       `gorm:"foreignKey:MissionID;constraint:OnDelete:CASCADE" json:"stations,omitempty"`
	Crawlers       []CrawlerEvent       `gorm:"foreignKey:MissionID;constraint:OnDelete:CASCADE" json:"crawlers,omitempty"`
	Platforms      []PlatformEvent      `gorm:"foreignKey:MissionID;constraint:OnDelete:CASCADE" json:"platforms,omitempty"`
	RadioTerminals []RadioTerminalEvent `gorm:"foreignKey:MissionID;constraint:OnDelete:CASCADE" json:"radio_terminals,omitempty"`
	Operators      []OperatorEvent      `gorm:"foreignKey:MissionID;constraint:OnDelete:CASCADE" json:"operators,omitempty"`
}

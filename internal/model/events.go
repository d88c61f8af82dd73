package model

import (
	"time"
)

// Booking event tables, one per resource kind. All share the same interval
// core (mission, resource, start, optional end); the extras ride along
// untouched through the reconciliation engine. Value receivers keep the
// With* methods copy-on-write.

type StationEvent struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	MissionID uint       `json:"mission_id" gorm:"index"`
	StationID uint       `json:"station_id" gorm:"index"`
	StartTime time.Time  `json:"start_time" gorm:"index"`
	EndTime   *time.Time `json:"end_time"`
}

func (e StationEvent) GetID() uint { return e.ID }
func (e StationEvent) GetMissionID() uint { return e.MissionID }
func (e StationEvent) GetResourceID() uint { return e.StationID }
func (e StationEvent) GetStart() time.Time { return e.StartTime }
func (e StationEvent) GetEnd() *time.Time { return e.EndTime }

func (e StationEvent) WithStart(t time.Time) StationEvent {
	e.StartTime = t
	return e
}

func (e StationEvent) WithEnd(t *time.Time) StationEvent {
	e.EndTime = t
	return e
}

func (e StationEvent) WithMission(id uint) StationEvent {
	e.MissionID = id
	return e
}

func (e StationEvent) WithResource(id uint) StationEvent {
	e.StationID = id
	return e
}

type CrawlerEvent struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	MissionID uint       `json:"mission_id" gorm:"index"`
	CrawlerID uint       `json:"crawler_id" gorm:"index"`
	StartTime time.Time  `json:"start_time" gorm:"index"`
	EndTime   *time.Time `json:"end_time"`
}

func (e CrawlerEvent) GetID() uint { return e.ID }
func (e CrawlerEvent) GetMissionID() uint { return e.MissionID }
func (e CrawlerEvent) GetResourceID() uint { return e.CrawlerID }
func (e CrawlerEvent) GetStart() time.Time { return e.StartTime }
func (e CrawlerEvent) GetEnd() *time.Time { return e.EndTime }

func (e CrawlerEvent) WithStart(t time.Time) CrawlerEvent {
	e.StartTime = t
	return e
}

func (e CrawlerEvent) WithEnd(t *time.Time) CrawlerEvent {
	e.EndTime = t
	return e
}

func (e CrawlerEvent) WithMission(id uint) CrawlerEvent {
	e.MissionID = id
	return e
}

func (e CrawlerEvent) WithResource(id uint) CrawlerEvent {
	e.CrawlerID = id
	return e
}

type PlatformEvent struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	MissionID   uint       `json:"mission_id" gorm:"index"`
	PlatformID  uint       `json:"platform_id" gorm:"index"`
	StartTime   time.Time  `json:"start_time" gorm:"index"`
	EndTime     *time.Time `json:"end_time"`
	MainRTNum   *int       `json:"main_rt_num"`
	BackupRTNum *int       `json:"backup_rt_num"`
	PodNum      *int       `json:"pod_num"`
	RassNum     *int       `json:"rass_num"`
	AtruNum     *int       `json:"atru_num"`
}

func (e PlatformEvent) GetID() uint { return e.ID }
func (e PlatformEvent) GetMissionID() uint { return e.MissionID }
func (e PlatformEvent) GetResourceID() uint { return e.PlatformID }
func (e PlatformEvent) GetStart() time.Time { return e.StartTime }
func (e PlatformEvent) GetEnd() *time.Time { return e.EndTime }

func (e PlatformEvent) WithStart(t time.Time) PlatformEvent {
	e.StartTime = t
	return e
}

func (e PlatformEvent) WithEnd(t *time.Time) PlatformEvent {
	e.EndTime = t
	return e
}

func (e PlatformEvent) WithMission(id uint) PlatformEvent {
	e.MissionID = id
	return e
}

func (e PlatformEvent) WithResource(id uint) PlatformEvent {
	e.PlatformID = id
	return e
}

type RadioTerminalEvent struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	MissionID   uint       `json:"mission_id" gorm:"index"`
	RTID        uint       `json:"rt_id" gorm:"column:rt_id;index"`
	StartTime   time.Time  `json:"start_time" gorm:"index"`
	EndTime     *time.Time `json:"end_time"`
	Active      bool       `json:"active"`
	UpChannel   int        `json:"up_channel"`
	DownChannel int        `json:"down_channel"`
}

func (e RadioTerminalEvent) GetID() uint { return e.ID }
func (e RadioTerminalEvent) GetMissionID() uint { return e.MissionID }
func (e RadioTerminalEvent) GetResourceID() uint { return e.RTID }
func (e RadioTerminalEvent) GetStart() time.Time { return e.StartTime }
func (e RadioTerminalEvent) GetEnd() *time.Time { return e.EndTime }

func (e RadioTerminalEvent) WithStart(t time.Time) RadioTerminalEvent {
	e.StartTime = t
	return e
}

func (e RadioTerminalEvent) WithEnd(t *time.Time) RadioTerminalEvent {
	e.EndTime = t
	return e
}

func (e RadioTerminalEvent) WithMission(id uint) RadioTerminalEvent {
	e.MissionID = id
	return e
}

func (e RadioTerminalEvent) WithResource(id uint) RadioTerminalEvent {
	e.RTID = id
	return e
}

type OperatorEvent struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	MissionID  uint       `json:"mission_id" gorm:"index"`
	OperatorID uint       `json:"operator_id" gorm:"index"`
	RoleID     uint       `json:"role_id" gorm:"index"`
	StartTime  time.Time  `json:"start_time" gorm:"index"`
	EndTime    *time.Time `json:"end_time"`
}

func (e OperatorEvent) GetID() uint { return e.ID }
func (e OperatorEvent) GetMissionID() uint { return e.MissionID }
func (e OperatorEvent) GetResourceID() uint { return e.OperatorID }
func (e OperatorEvent) GetStart() time.Time { return e.StartTime }
func (e OperatorEvent) GetEnd() *time.Time { return e.EndTime }

func (e OperatorEvent) WithStart(t time.Time) OperatorEvent {
	e.StartTime = t
	return e
}

func (e OperatorEvent) WithEnd(t *time.Time) OperatorEvent {
	e.EndTime = t
	return e
}

func (e OperatorEvent) WithMission(id uint) OperatorEvent {
	e.MissionID = id
	return e
}

func (e OperatorEvent) WithResource(id uint) OperatorEvent {
	e.OperatorID = id
	return e
}

package model

import (
	"errors"
	"fmt"
	"time"
)

// Create payloads and partial-update patches for the five event kinds.
// A nil field in a patch means "leave unchanged"; reopening a closed event
// (end back to null) only happens through a live switch.

var (
	ErrInvalidInterval = errors.New("end_time must be after start_time")
	ErrInvalidChannel  = errors.New("channel out of range 0..9")
)

func validateWindow(start time.Time, end *time.Time) error {
	if end != nil && !start.Before(*end) {
		return ErrInvalidInterval
	}

	return nil
}

type StationEventCreate struct {
	StationID uint       `json:"station_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

func (c StationEventCreate) NewEvent() StationEvent {
	return StationEvent{StationID: c.StationID, StartTime: c.StartTime, EndTime: c.EndTime}
}

func (c StationEventCreate) ResourceID() uint { return c.StationID }

func (c StationEventCreate) Window() (time.Time, *time.Time) { return c.StartTime, c.EndTime }

func (c StationEventCreate) Validate() error { return validateWindow(c.StartTime, c.EndTime) }

type StationEventUpdate struct {
	ID        uint       `json:"id"`
	StationID *uint      `json:"station_id"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

func (u StationEventUpdate) TargetID() uint { return u.ID }

func (u StationEventUpdate) Apply(e StationEvent) StationEvent {
	if u.StationID != nil {
		e.StationID = *u.StationID
	}

	if u.StartTime != nil {
		e.StartTime = *u.StartTime
	}

	if u.EndTime != nil {
		e.EndTime = u.EndTime
	}

	return e
}

func (u StationEventUpdate) ResourceRef() (uint, bool) {
	if u.StationID == nil {
		return 0, false
	}

	return *u.StationID, true
}

type CrawlerEventCreate struct {
	CrawlerID uint       `json:"crawler_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

func (c CrawlerEventCreate) NewEvent() CrawlerEvent {
	return CrawlerEvent{CrawlerID: c.CrawlerID, StartTime: c.StartTime, EndTime: c.EndTime}
}

func (c CrawlerEventCreate) ResourceID() uint { return c.CrawlerID }

func (c CrawlerEventCreate) Window() (time.Time, *time.Time) { return c.StartTime, c.EndTime }

func (c CrawlerEventCreate) Validate() error { return validateWindow(c.StartTime, c.EndTime) }

type CrawlerEventUpdate struct {
	ID        uint       `json:"id"`
	CrawlerID *uint      `json:"crawler_id"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

func (u CrawlerEventUpdate) TargetID() uint { return u.ID }

func (u CrawlerEventUpdate) Apply(e CrawlerEvent) CrawlerEvent {
	if u.CrawlerID != nil {
		e.CrawlerID = *u.CrawlerID
	}

	if u.StartTime != nil {
		e.StartTime = *u.StartTime
	}

	if u.EndTime != nil {
		e.EndTime = u.EndTime
	}

	return e
}

func (u CrawlerEventUpdate) ResourceRef() (uint, bool) {
	if u.CrawlerID == nil {
		return 0, false
	}

	return *u.CrawlerID, true
}

type PlatformEventCreate struct {
	PlatformID  uint       `json:"platform_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	MainRTNum   *int       `json:"main_rt_num"`
	BackupRTNum *int       `json:"backup_rt_num"`
	PodNum      *int       `json:"pod_num"`
	RassNum     *int       `json:"rass_num"`
	AtruNum     *int       `json:"atru_num"`
}

func (c PlatformEventCreate) NewEvent() PlatformEvent {
	return PlatformEvent{
		PlatformID:  c.PlatformID,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		MainRTNum:   c.MainRTNum,
		BackupRTNum: c.BackupRTNum,
		PodNum:      c.PodNum,
		RassNum:     c.RassNum,
		AtruNum:     c.AtruNum,
	}
}

func (c PlatformEventCreate) ResourceID() uint { return c.PlatformID }

func (c PlatformEventCreate) Window() (time.Time, *time.Time) { return c.StartTime, c.EndTime }

func (c PlatformEventCreate) Validate() error { return validateWindow(c.StartTime, c.EndTime) }

type PlatformEventUpdate struct {
	ID          uint       `json:"id"`
	PlatformID  *uint      `json:"platform_id"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	MainRTNum   *int       `json:"main_rt_num"`
	BackupRTNum *int       `json:"backup_rt_num"`
	PodNum      *int       `json:"pod_num"`
	RassNum     *int       `json:"rass_num"`
	AtruNum     *int       `json:"atru_num"`
}

func (u PlatformEventUpdate) TargetID() uint { return u.ID }

func (u PlatformEventUpdate) Apply(e PlatformEvent) PlatformEvent {
	if u.PlatformID != nil {
		e.PlatformID = *u.PlatformID
	}

	if u.StartTime != nil {
		e.StartTime = *u.StartTime
	}

	if u.EndTime != nil {
		e.EndTime = u.EndTime
	}

	if u.MainRTNum != nil {
		e.MainRTNum = u.MainRTNum
	}

	if u.BackupRTNum != nil {
		e.BackupRTNum = u.BackupRTNum
	}

	if u.PodNum != nil {
		e.PodNum = u.PodNum
	}

	if u.RassNum != nil {
		e.RassNum = u.RassNum
	}

	if u.AtruNum != nil {
		e.AtruNum = u.AtruNum
	}

	return e
}

func (u PlatformEventUpdate) ResourceRef() (uint, bool) {
	if u.PlatformID == nil {
		return 0, false
	}

	return *u.PlatformID, true
}

type RadioTerminalEventCreate struct {
	RTID        uint       `json:"rt_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Active      bool       `json:"active"`
	UpChannel   int        `json:"up_channel"`
	DownChannel int        `json:"down_channel"`
}

func (c RadioTerminalEventCreate) NewEvent() RadioTerminalEvent {
	return RadioTerminalEvent{
		RTID:        c.RTID,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Active:      c.Active,
		UpChannel:   c.UpChannel,
		DownChannel: c.DownChannel,
	}
}

func (c RadioTerminalEventCreate) ResourceID() uint { return c.RTID }

func (c RadioTerminalEventCreate) Window() (time.Time, *time.Time) { return c.StartTime, c.EndTime }

func (c RadioTerminalEventCreate) Validate() error {
	if err := validateWindow(c.StartTime, c.EndTime); err != nil {
		return err
	}

	for _, ch := range []int{c.UpChannel, c.DownChannel} {
		if ch < 0 || ch > 9 {
			return fmt.Errorf("channel %d: %w", ch, ErrInvalidChannel)
		}
	}

	return nil
}

type RadioTerminalEventUpdate struct {
	ID          uint       `json:"id"`
	RTID        *uint      `json:"rt_id"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Active      *bool      `json:"active"`
	UpChannel   *int       `json:"up_channel"`
	DownChannel *int       `json:"down_channel"`
}

func (u RadioTerminalEventUpdate) TargetID() uint { return u.ID }

func (u RadioTerminalEventUpdate) Apply(e RadioTerminalEvent) RadioTerminalEvent {
	if u.RTID != nil {
		e.RTID = *u.RTID
	}

	if u.StartTime != nil {
		e.StartTime = *u.StartTime
	}

	if u.EndTime != nil {
		e.EndTime = u.EndTime
	}

	if u.Active != nil {
		e.Active = *u.Active
	}

	if u.UpChannel != nil {
		e.UpChannel = *u.UpChannel
	}

	if u.DownChannel != nil {
		e.DownChannel = *u.DownChannel
	}

	return e
}

func (u RadioTerminalEventUpdate) ResourceRef() (uint, bool) {
	if u.RTID == nil {
		return 0, false
	}

	return *u.RTID, true
}

type OperatorEventCreate struct {
	OperatorID uint       `json:"operator_id"`
	RoleID     uint       `json:"role_id"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
}

func (c OperatorEventCreate) NewEvent() OperatorEvent {
	return OperatorEvent{OperatorID: c.OperatorID, RoleID: c.RoleID, StartTime: c.StartTime, EndTime: c.EndTime}
}

func (c OperatorEventCreate) ResourceID() uint { return c.OperatorID }

func (c OperatorEventCreate) Window() (time.Time, *time.Time) { return c.StartTime, c.EndTime }

func (c OperatorEventCreate) Validate() error { return validateWindow(c.StartTime, c.EndTime) }

type OperatorEventUpdate struct {
	ID         uint       `json:"id"`
	OperatorID *uint      `json:"operator_id"`
	RoleID     *uint      `json:"role_id"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
}

func (u OperatorEventUpdate) TargetID() uint { return u.ID }

func (u OperatorEventUpdate) Apply(e OperatorEvent) OperatorEvent {
	if u.OperatorID != nil {
		e.OperatorID = *u.OperatorID
	}

	if u.RoleID != nil {
		e.RoleID = *u.RoleID
	}

	if u.StartTime != nil {
		e.StartTime = *u.StartTime
	}

	if u.EndTime != nil {
		e.EndTime = u.EndTime
	}

	return e
}

func (u OperatorEventUpdate) ResourceRef() (uint, bool) {
	if u.OperatorID == nil {
		return 0, false
	}

	return *u.OperatorID, true
}


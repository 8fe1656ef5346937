package models

import "time"

type Badge string

const (
	BadgeDirector       Badge = "director"
	BadgeGuionista      Badge = "guionista"
	BadgeNovato         Badge = "novato"
	BadgeSpamero        Badge = "spamero"
	BadgeDibujante      Badge = "dibujante"
	BadgeAnimador       Badge = "animador"
	BadgeHacker         Badge = "hacker"
	BadgeSuperfan       Badge = "superfan"
	BadgeFan            Badge = "fan"
	BadgeMasterAnimador Badge = "masteranimador"
)

// BadgeInfo carries the display semantics of a badge.
type BadgeInfo struct {
	Label Badge  `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// AllBadges lists every badge in display order.
var AllBadges = []BadgeInfo{
	{BadgeDirector, "clapperboard", "bg-rose-100 text-rose-800 border border-rose-300"},
	{BadgeGuionista, "pencil", "bg-amber-100 text-amber-800 border border-amber-300"},
	{BadgeNovato, "user-plus", "bg-blue-100 text-blue-800 border border-blue-300"},
	{BadgeSpamero, "users", "bg-red-100 text-red-800 border border-red-300"},
	{BadgeDibujante, "brush", "bg-green-100 text-green-800 border border-green-300"},
	{BadgeAnimador, "video", "bg-purple-100 text-purple-800 border border-purple-300"},
	{BadgeHacker, "code", "bg-slate-100 text-slate-800 border border-slate-300"},
	{BadgeSuperfan, "star", "bg-yellow-100 text-yellow-800 border border-yellow-300"},
	{BadgeFan, "heart-handshake", "bg-pink-100 text-pink-800 border border-pink-300"},
	{BadgeMasterAnimador, "award", "bg-indigo-100 text-indigo-800 border border-indigo-300"},
}

var defaultBadgeInfo = BadgeInfo{Icon: "check-circle", Color: "bg-gray-100 text-gray-800 border border-gray-300"}

func (b Badge) Valid() bool {
	for _, info := range AllBadges {
		if info.Label == b {
			return true
		}
	}
	return false
}

// Info returns the display info for b, or a neutral default for unknown labels.
func (b Badge) Info() BadgeInfo {
	for _, info := range AllBadges {
		if info.Label == b {
			return info
		}
	}
	info := defaultBadgeInfo
	info.Label = b
	return info
}

// UserBadge 用户徽章
type UserBadge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeType Badge     `gorm:"size:20;not null;uniqueIndex:idx_user_badge" json:"badge_type"`
	CreatedAt time.Time `json:"created_at"`
}

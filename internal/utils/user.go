package utils

import (
	"time"
)

// GetUserLevel 根据声望返回用户等级
func GetUserLevel(reputation int) (name string, icon string) {
	switch {
	case reputation >= 1000:
		return "宗师", "🏆"
	case reputation >= 301:
		return "达人", "💎"
	case reputation >= 101:
		return "熟手", "🚀"
	case reputation >= 21:
		return "入门", "💡"
	default:
		return "新人", "🌱"
	}
}

// GetDaysSinceJoined 计算注册天数
func GetDaysSinceJoined(createdAt time.Time) int {
	return int(time.Since(createdAt).Hours() / 24)
}

package common

import "fmt"

const (
	RedisKeyQuests      = "quests"
	RedisKeyBadges      = "badges"
	RedisKeyRewards     = "rewards"
	RedisKeyLeaderBoard = "leaderboard"
)

func RedisKeyUserQuests(userID string) string {
	return fmt.Sprintf("user-quests:%s", userID)
}

func RedisKeyUserTaskProgress(userID string) string {
	return fmt.Sprintf("user-task-progress:%s", userID)
}

func RedisKeyUserBadges(userID string) string {
	return fmt.Sprintf("user-badges:%s", userID)
}

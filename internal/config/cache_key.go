package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuotaStatusKey returns the cache key for a user's daily AI quota status.
func (r *CacheKeyStruct) QuotaStatusKey(userID int) string {
	return fmt.Sprintf("quota:%d:status", userID)
}

// QuizSnapshotKey returns the cache key for a quiz session snapshot.
// Owner is "user:<id>" for registered users or "anon:<uuid>" otherwise.
func (r *CacheKeyStruct) QuizSnapshotKey(owner string) string {
	return fmt.Sprintf("quiz:%s:snapshot", owner)
}

// QuestionBankKey returns the cache key for the full question bank payload.
func (r *CacheKeyStruct) QuestionBankKey() string {
	return "questions:bank"
}

var CacheKey = NewCacheKeyStruct()

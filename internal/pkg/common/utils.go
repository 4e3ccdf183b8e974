package common

import (
	"time"

	"github.com/google/uuid"
)

// GenerateUUID 生成食譜文件識別碼
func GenerateUUID() string {
	return uuid.New().String()
}

// NowRFC3339 以 RFC3339 回傳目前 UTC 時間，儲存層的 createdAt 一律用這個格式
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	TaskLockTTL       = 2 * time.Second
	TaskLockKeyPrefix = "lock:task:launch"
)

// TaskLock 任务启动锁：同一用户同名任务的并发 Launch 只放行一个
// 拿不到锁时调用方退化为软单飞（查询检查仍会执行，重复启动本身无害）
type TaskLock struct{}

// Acquire 抢占 (user, job_name) 锁
func (l *TaskLock) Acquire(ctx context.Context, userID uint64, name, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d:%s", TaskLockKeyPrefix, userID, name)
	return Client.SetNX(ctx, key, token, TaskLockTTL).Result()
}

// Release 用 lua 保证只释放自己持有的锁
func (l *TaskLock) Release(ctx context.Context, userID uint64, name, token string) error {
	key := fmt.Sprintf("%s:%d:%s", TaskLockKeyPrefix, userID, name)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, Client, []string{key}, token).Result()
	return err
}

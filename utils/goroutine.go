package utils

import "log"

// SafeGo 启动 goroutine 并拦截 panic，
// 用于缓存失效等不应拖垮请求协程的后台任务
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[SafeGo] recovered from panic: %v", err)
			}
		}()
		fn()
	}()
}

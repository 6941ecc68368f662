package ratelimit

import "fmt"

// KeyForIP builds a limiter key scoped to a client address.
func KeyForIP(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("ip:%s", ip)
}

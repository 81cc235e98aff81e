// Package flash queues one-shot user-facing messages in the session. A
// message is readable exactly once: the next rendered response pops it.
package flash

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	KeySuccess = "success"
	KeyError   = "error"
)

func Success(c *gin.Context, message string) {
	add(c, KeySuccess, message)
}

func Error(c *gin.Context, message string) {
	add(c, KeyError, message)
}

func add(c *gin.Context, key, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, key)
	session.Save()
}

// Pop returns all queued messages for key and clears them from the session.
func Pop(c *gin.Context, key string) []string {
	session := sessions.Default(c)
	raw := session.Flashes(key)
	if len(raw) == 0 {
		return nil
	}
	// reading flashes mutates the session, so the removal must be persisted
	session.Save()

	messages := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}

// Data merges the pending success/error messages into template data so every
// render can surface them the same way.
func Data(c *gin.Context, h gin.H) gin.H {
	if h == nil {
		h = gin.H{}
	}
	// a pop clears every queued message, so surface all of them
	if msgs := Pop(c, KeySuccess); len(msgs) > 0 {
		h["success"] = strings.Join(msgs, " ")
	}
	if msgs := Pop(c, KeyError); len(msgs) > 0 {
		h["error"] = strings.Join(msgs, " ")
	}
	return h
}

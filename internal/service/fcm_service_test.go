package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushDataStringifies(t *testing.T) {
	got := pushData("like", map[string]interface{}{
		"post_id": uint(7),
		"count":   3,
		"ratio":   0.5,
		"seen":    true,
		"name":    "x",
		"tags":    []string{"a"},
		"type":    "ignored",
	})
	assert.Equal(t, map[string]string{
		"post_id": "7",
		"count":   "3",
		"ratio":   "0.5",
		"seen":    "true",
		"name":    "x",
		"tags":    `["a"]`,
		"type":    "like",
	}, got)
}

func TestNilFCMServiceIsNoop(t *testing.T) {
	var s *FCMService
	assert.NoError(t, s.SendToUser(context.Background(), "token", "like", "t", "b", nil))
	assert.Nil(t, NewFCMService(""))
}

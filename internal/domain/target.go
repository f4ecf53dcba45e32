package domain

import (
	"errors"
	"regexp"
	"strings"
)

// TargetKind tags what a report or notification points at.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetUser    TargetKind = "user"
	TargetComment TargetKind = "comment"
)

var ErrUnknownTarget = errors.New("unknown target kind")

// ParseTargetKind accepts only the three known kinds.
func ParseTargetKind(s string) (TargetKind, error) {
	switch k := TargetKind(strings.ToLower(strings.TrimSpace(s))); k {
	case TargetPost, TargetUser, TargetComment:
		return k, nil
	}
	return "", ErrUnknownTarget
}

// TargetRef is a typed pointer to a post, user or comment.
type TargetRef struct {
	Kind TargetKind `json:"kind"`
	ID   uint       `json:"id"`
}

func PostRef(id uint) *TargetRef { return &TargetRef{Kind: TargetPost, ID: id} }
func UserRef(id uint) *TargetRef { return &TargetRef{Kind: TargetUser, ID: id} }

var phoneRe = regexp.MustCompile(PhonePattern)

// ValidPhone checks the local mobile format.
func ValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// InternationalPhone converts "07XXXXXXXXX" to "+9647XXXXXXXXX". Other input is returned unchanged.
func InternationalPhone(phone string) string {
	if strings.HasPrefix(phone, "0") {
		return InternationalPrefix + phone[1:]
	}
	return phone
}

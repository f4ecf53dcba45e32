package domain

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// IsStaff reports whether role may moderate content (delete posts/comments, review reports).
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleModerator
}

const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypeVideo = "video"
	PostTypeLink  = "link"
)

const (
	NotificationLike     = "like"
	NotificationFavorite = "favorite"
	NotificationComment  = "comment"
	NotificationFollow   = "follow"
	NotificationMention  = "mention"
	NotificationAdmin    = "admin"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

const (
	ContactStatusPending = "pending"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
	ContactStatusClosed  = "closed"
)

// Pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PhonePattern is the accepted local mobile format (Iraq).
const PhonePattern = `^07[3-9]\d{8}$`

// InternationalPrefix replaces the leading 0 of a local number.
const InternationalPrefix = "+964"

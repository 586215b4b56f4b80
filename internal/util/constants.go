package util

const DateFormat = "2006-01-02"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// gin context keys
const (
	UserContextKey = "user"
	TokenKey       = "token"
	RequestIDKey   = "request_id"
)

const (
	MimeImage = "image/"
)

var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

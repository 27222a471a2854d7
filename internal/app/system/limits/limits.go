// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxContactFormSize caps a contact submission. The message field is
	// the only free text and nothing legitimate comes close.
	MaxContactFormSize = 64 << 10 // 64 KB
)

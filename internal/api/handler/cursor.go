package handler

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/buicq/taskcli/internal/submit"
)

// DecodeSubmissionCursor parses an opaque pagination cursor. An empty
// cursor means the first page.
func DecodeSubmissionCursor(cursorStr string) (*submit.SubmissionCursor, error) {
	if cursorStr == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(cursorStr)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(string(decoded), "|")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor format")
	}

	var submittedAt int64
	if _, err := fmt.Sscanf(parts[0], "%d", &submittedAt); err != nil {
		return nil, fmt.Errorf("invalid timestamp in cursor: %w", err)
	}

	return &submit.SubmissionCursor{
		SubmittedAt:  time.Unix(0, submittedAt),
		SubmissionID: parts[1],
	}, nil
}

// EncodeSubmissionCursor renders a cursor as an opaque base64 token.
func EncodeSubmissionCursor(cursor *submit.SubmissionCursor) string {
	cs := fmt.Sprintf("%d|%s", cursor.SubmittedAt.UnixNano(), cursor.SubmissionID)
	return base64.StdEncoding.EncodeToString([]byte(cs))
}

package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeRideToken creates a base64 encoded cursor from the last ride of a page.
// The ride ID breaks ties between rides sharing a date and creation time.
func EncodeRideToken(date time.Time, createdAt time.Time, rideID int64) string {
	return EncodeMultiFieldToken(date.Format(timeFormat), createdAt.Format(timeFormat), strconv.FormatInt(rideID, 10))
}

// DecodeRideToken parses a token produced by EncodeRideToken.
func DecodeRideToken(token string) (time.Time, time.Time, int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	if len(parts) != 3 {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid pagination token format (ride date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	rideID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid pagination token format (ride id parse): %w", err)
	}

	return date, createdAt, rideID, nil
}

// EncodeMultiFieldToken creates a URL-safe token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	return strings.Split(string(decodedBytes), "|"), nil
}

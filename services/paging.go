package services

import (
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MinPageSize     = 10
	MaxPageSize     = 1000

	// Continuation tokens are decimal page numbers; nine digits bounds them
	// far beyond any realistic page count.
	maxContinuationTokenLength = 9
)

const (
	msgContinuationTokenNotPositive = "Continuation token must be a positive, non zero integer."
	msgContinuationTokenTooLong     = "The field ContinuationToken must be a string with a maximum length of 9."
	msgPageSizeOutOfRange           = "The field PageSize must be between 10 and 1000."
)

// ValidationErrors maps a request field to the messages it failed with.
type ValidationErrors map[string][]string

func (v ValidationErrors) Error() string {
	var fields []string
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid request fields: " + strings.Join(fields, ", ")
}

// validatePageRequest turns the raw token and page size into a 1-based page
// number and an effective page size, collecting per-field errors. An empty
// token means page one; a nil page size means the default.
func validatePageRequest(continuationToken string, pageSize *int) (int, int, ValidationErrors) {
	verrs := make(ValidationErrors)

	pageNumber := 1
	if continuationToken != "" {
		number, msg := parseContinuationToken(continuationToken)
		if msg != "" {
			verrs["ContinuationToken"] = append(verrs["ContinuationToken"], msg)
		} else {
			pageNumber = number
		}
	}

	size := DefaultPageSize
	if pageSize != nil {
		if *pageSize < MinPageSize || *pageSize > MaxPageSize {
			verrs["PageSize"] = append(verrs["PageSize"], msgPageSizeOutOfRange)
		} else {
			size = *pageSize
		}
	}

	if len(verrs) > 0 {
		return 0, 0, verrs
	}
	return pageNumber, size, nil
}

func parseContinuationToken(token string) (int, string) {
	if len(token) > maxContinuationTokenLength {
		return 0, msgContinuationTokenTooLong
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, msgContinuationTokenNotPositive
		}
	}
	number, err := strconv.Atoi(token)
	if err != nil || number < 1 {
		return 0, msgContinuationTokenNotPositive
	}
	return number, ""
}

// orderNotifications sorts by priority descending, then creation date
// descending. The sort is stable with an id tiebreaker so identical queries
// page identically across calls.
func orderNotifications(items []notificationWithStatus) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Notification, items[j].Notification
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if !a.CreationDate.Equal(b.CreationDate) {
			return a.CreationDate.After(b.CreationDate)
		}
		return a.ID > b.ID
	})
}

// paginate slices page pageNumber out of the ordered set and computes the
// next continuation token. A token is only produced when the slice is full
// to the requested size and rows remain beyond it; any shorter page,
// including an empty one, is terminal.
func paginate(items []notificationWithStatus, pageNumber, pageSize int) ([]notificationWithStatus, *string) {
	total := len(items)
	skip := (pageNumber - 1) * pageSize
	if skip >= total {
		return nil, nil
	}

	end := skip + pageSize
	if end > total {
		end = total
	}
	page := items[skip:end]

	if len(page) == pageSize && end < total {
		token := strconv.Itoa(pageNumber + 1)
		return page, &token
	}
	return page, nil
}

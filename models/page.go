package models

// Page is the upstream paginated response shape. Its zero value is the
// documented empty fallback for failed reads.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

// EmptyPage returns the fallback page shape with a non-nil content slice
func EmptyPage[T any]() Page[T] {
	return Page[T]{Content: []T{}}
}

// NotificationPage is the page shape returned by paginated notification reads
type NotificationPage = Page[Notification]

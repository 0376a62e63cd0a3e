package services

// filterByStatus applies the optional read-state and deleted-state
// predicates. A nil filter leaves that dimension unconstrained; both set
// combine with AND. filter=false matches a nil date, which covers both an
// explicit unread/undeleted row and the synthesized empty status.
func filterByStatus(items []notificationWithStatus, readFilter, deletedFilter *bool) []notificationWithStatus {
	if readFilter == nil && deletedFilter == nil {
		return items
	}

	filtered := make([]notificationWithStatus, 0, len(items))
	for _, item := range items {
		if readFilter != nil && *readFilter != (item.Status.ReadDate != nil) {
			continue
		}
		if deletedFilter != nil && *deletedFilter != (item.Status.DeletedDate != nil) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

package openstack

// collectPaged drains a paginated listing into a single ordered slice,
// surviving markers invalidated by concurrent deletions.
//
// fetch returns the page following the given marker ("" for the first
// page); id extracts the marker value of an accumulated item. When fetching
// with the last accumulated item's marker fails as a bad request (the item
// was deleted between pages), the marker is rolled back through up to
// window earlier accumulated items. Each rollback re-requests only items
// not yet accumulated, so no item is fetched twice through marker reuse.
// Exhausting the window fails with UnrecoverableListError. An empty page
// ends the enumeration.
func collectPaged[T any](fetch func(marker string) ([]T, error), id func(T) string, window int) ([]T, error) {
	var all []T
	for {
		var page []T
		if len(all) == 0 {
			var err error
			page, err = fetch("")
			if err != nil {
				return nil, err
			}
		} else {
			fetched := false
			for i := 0; i < window && i < len(all); i++ {
				marker := id(all[len(all)-1-i])
				p, err := fetch(marker)
				if err == nil {
					page = p
					fetched = true
					break
				}
				if !isBadRequest(err) {
					return nil, err
				}
				metricMarkerRollbacks.Inc()
			}
			if !fetched {
				metricUnrecoverableListings.Inc()
				return nil, &UnrecoverableListError{Window: window}
			}
		}

		if len(page) == 0 {
			return all, nil
		}
		all = append(all, page...)
	}
}

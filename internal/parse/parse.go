package parse

import (
	"slices"
	"strconv"
	"strings"

	"mangadesk/internal/domain"

	"github.com/pkg/errors"
)

// PageSelection parses user input such as "1-3,5" into sorted, unique page
// numbers. An empty input or "all" selects every page.
func PageSelection(input string, pageCount int) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "all") {
		pages := make([]int, pageCount)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	unique := make(map[int]bool)

	for _, part := range strings.Split(input, ",") {
		if strings.Contains(part, "-") {
			rangeParts := strings.Split(part, "-")
			if len(rangeParts) != 2 {
				return nil, errors.Errorf("invalid range format: %s", part)
			}
			start, end, err := getRange(rangeParts)
			if err != nil {
				return nil, err
			}

			for page := start; page <= end; page++ {
				unique[page] = true
			}
		} else {
			page, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, errors.Errorf("invalid page number: %s", part)
			}
			unique[page] = true
		}
	}

	selected := make([]int, 0, len(unique))
	for page := range unique {
		if page < 1 || page > pageCount {
			return nil, domain.OutOfRange("page %d is outside 1..%d", page, pageCount)
		}
		selected = append(selected, page)
	}
	slices.Sort(selected)

	return selected, nil
}

// getRange parses the user input for page ranges
func getRange(rangeParts []string) (int, int, error) {
	start, err := strconv.Atoi(strings.TrimSpace(rangeParts[0]))
	if err != nil {
		return 0, 0, errors.Errorf("invalid start of range: %s", rangeParts[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(rangeParts[1]))
	if err != nil {
		return 0, 0, errors.Errorf("invalid end of range: %s", rangeParts[1])
	}

	if start > end {
		return 0, 0, errors.Errorf("start of range should not be greater than end: %s-%s", rangeParts[0], rangeParts[1])
	}

	return start, end, nil
}

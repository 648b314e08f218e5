package usecase

import (
	"sort"
	"strings"
	"unicode"

	"complainhub/internal/domain/entity"
)

// ListFilter holds the three independent complaint-list filters. "all" (or
// empty) disables a filter. When AdminSearch is set, the free-text search
// also covers the student name and id columns, as on the admin list.
type ListFilter struct {
	Status      string
	Category    string
	Search      string
	AdminSearch bool
}

// FilterComplaints returns the subset matching every active filter,
// preserving the input order.
func FilterComplaints(complaints []*entity.Complaint, filter ListFilter) []*entity.Complaint {
	search := searchFold(filter.Search)

	result := []*entity.Complaint{}
	for _, c := range complaints {
		if filter.Status != "" && filter.Status != "all" && string(c.Status) != filter.Status {
			continue
		}
		if filter.Category != "" && filter.Category != "all" && string(c.Category) != filter.Category {
			continue
		}
		if search != "" && !matchesSearch(c, search, filter.AdminSearch) {
			continue
		}
		result = append(result, c)
	}
	return result
}

func matchesSearch(c *entity.Complaint, search string, adminSearch bool) bool {
	if strings.Contains(searchFold(c.Title), search) ||
		strings.Contains(searchFold(c.Description), search) {
		return true
	}
	if adminSearch {
		return strings.Contains(searchFold(c.StudentName), search) ||
			strings.Contains(searchFold(c.StudentID), search)
	}
	return false
}

// searchFold lowercases and strips everything but letters and digits, so
// "wifi" matches "Wi-Fi" and punctuation never breaks a match.
func searchFold(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// SortByCreated orders complaints by their normalized creation time. Order
// is "newest" or "oldest"; ties keep their prior relative order.
func SortByCreated(complaints []*entity.Complaint, order string) {
	sort.SliceStable(complaints, func(i, j int) bool {
		a, b := complaints[i].CreatedTime(), complaints[j].CreatedTime()
		if order == "oldest" {
			return a.Before(b)
		}
		return b.Before(a)
	})
}

// SortByPriority orders complaints high, medium, low; reverse flips it.
// Stable, so equal priorities keep their prior relative order.
func SortByPriority(complaints []*entity.Complaint, reverse bool) {
	sort.SliceStable(complaints, func(i, j int) bool {
		a, b := complaints[i].Priority.Rank(), complaints[j].Priority.Rank()
		if reverse {
			return b < a
		}
		return a < b
	})
}

// StatusCounts are the per-status tab badge totals, computed over the
// unfiltered set.
type StatusCounts struct {
	All        int `json:"all"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Rejected   int `json:"rejected"`
}

func CountByStatus(complaints []*entity.Complaint) StatusCounts {
	counts := StatusCounts{All: len(complaints)}
	for _, c := range complaints {
		switch c.Status {
		case entity.StatusPending:
			counts.Pending++
		case entity.StatusInProgress:
			counts.InProgress++
		case entity.StatusResolved:
			counts.Resolved++
		case entity.StatusRejected:
			counts.Rejected++
		}
	}
	return counts
}

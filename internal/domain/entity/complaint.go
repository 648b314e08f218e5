package entity

import (
	"time"

	"complainhub/pkg/timestamp"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

type Category string

const (
	CategoryAcademic       Category = "academic"
	CategoryInfrastructure Category = "infrastructure"
	CategoryAdministrative Category = "administrative"
	CategoryHostel         Category = "hostel"
	CategoryCanteen        Category = "canteen"
	CategoryTransport      Category = "transport"
	CategoryOthers         Category = "others"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAcademic, CategoryInfrastructure, CategoryAdministrative,
		CategoryHostel, CategoryCanteen, CategoryTransport, CategoryOthers:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting: high before medium before low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Comment is one entry in a complaint's comment trail. CreatedAt is kept as
// the raw stored value because existing records hold ISO strings, Firestore
// timestamps or epoch objects interchangeably; use CreatedTime to read it.
type Comment struct {
	ID          string      `json:"id" firestore:"id"`
	ComplaintID string      `json:"complaintId" firestore:"complaintId"`
	UserID      string      `json:"userId" firestore:"userId"`
	UserName    string      `json:"userName" firestore:"userName"`
	UserRole    string      `json:"userRole" firestore:"userRole"`
	Content     string      `json:"content" firestore:"content"`
	CreatedAt   interface{} `json:"createdAt" firestore:"createdAt"`
}

func (c *Comment) CreatedTime() time.Time {
	t, err := timestamp.Normalize(c.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ComplaintUpdate is a structured status-change record, independent of the
// comment list.
type ComplaintUpdate struct {
	Status      Status      `json:"status" firestore:"status"`
	Description string      `json:"description" firestore:"description"`
	By          string      `json:"by" firestore:"by"`
	Date        interface{} `json:"date" firestore:"date"`
}

type Complaint struct {
	ID              string            `json:"id" firestore:"-"`
	Title           string            `json:"title" firestore:"title"`
	Description     string            `json:"description" firestore:"description"`
	Category        Category          `json:"category" firestore:"category"`
	Status          Status            `json:"status" firestore:"status"`
	Priority        Priority          `json:"priority" firestore:"priority"`
	StudentID       string            `json:"studentId" firestore:"studentId"`
	StudentName     string            `json:"studentName" firestore:"studentName"`
	Department      string            `json:"department" firestore:"department"`
	AssignedTo      string            `json:"assignedTo,omitempty" firestore:"assignedTo,omitempty"`
	RejectionReason string            `json:"rejectionReason,omitempty" firestore:"rejectionReason,omitempty"`
	ImageUrl        string            `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	Comments        []Comment         `json:"comments" firestore:"comments"`
	Updates         []ComplaintUpdate `json:"updates" firestore:"updates"`

	// Stored in several historical shapes; read through CreatedTime and
	// friends rather than direct type assertions.
	CreatedAt  interface{} `json:"createdAt" firestore:"createdAt"`
	UpdatedAt  interface{} `json:"updatedAt" firestore:"updatedAt"`
	ResolvedAt interface{} `json:"resolvedAt,omitempty" firestore:"resolvedAt,omitempty"`
}

func (c *Complaint) CreatedTime() time.Time {
	t, err := timestamp.Normalize(c.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (c *Complaint) UpdatedTime() time.Time {
	t, err := timestamp.Normalize(c.UpdatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ApplyReadDefaults fills the field defaults the admin surface promises:
// missing status reads as pending, priority as low, category as others, and
// the audit lists as empty rather than nil.
func (c *Complaint) ApplyReadDefaults() {
	if c.Status == "" {
		c.Status = StatusPending
	}
	if c.Priority == "" {
		c.Priority = PriorityLow
	}
	if c.Category == "" {
		c.Category = CategoryOthers
	}
	if c.Comments == nil {
		c.Comments = []Comment{}
	}
	if c.Updates == nil {
		c.Updates = []ComplaintUpdate{}
	}
}

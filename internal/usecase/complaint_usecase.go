package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"complainhub/internal/domain/entity"
	"complainhub/internal/domain/repository"
	"complainhub/pkg/errors"
	"complainhub/pkg/logger"
)

// ComplaintUseCase implements the complaint lifecycle: submission, listing,
// status transitions, the comment trail and the live feed. The fallback
// repository supplies sample data when the primary watch stays silent past
// watchFallback.
type ComplaintUseCase struct {
	complaintRepo    repository.ComplaintRepository
	userRepo         repository.UserRepository
	fallbackRepo     repository.ComplaintRepository
	classifier       PriorityClassifier
	images           ImageStore
	broadcaster      EventBroadcaster
	watchFallback    time.Duration
	inlineImageLimit int64
}

func NewComplaintUseCase(
	complaintRepo repository.ComplaintRepository,
	userRepo repository.UserRepository,
	fallbackRepo repository.ComplaintRepository,
	classifier PriorityClassifier,
	images ImageStore,
	broadcaster EventBroadcaster,
	watchFallback time.Duration,
	inlineImageLimit int64,
) *ComplaintUseCase {
	return &ComplaintUseCase{
		complaintRepo:    complaintRepo,
		userRepo:         userRepo,
		fallbackRepo:     fallbackRepo,
		classifier:       classifier,
		images:           images,
		broadcaster:      broadcaster,
		watchFallback:    watchFallback,
		inlineImageLimit: inlineImageLimit,
	}
}

type CreateComplaintInput struct {
	Title       string `json:"title" validate:"required,min=5,max=200"`
	Description string `json:"description" validate:"required,min=10"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	StudentID   string `json:"studentId"`
	Department  string `json:"department"`
	Image       string `json:"image"`
}

// ComplaintEvent is the payload broadcast to live listeners on every write.
type ComplaintEvent struct {
	Type        string `json:"type"`
	ComplaintID string `json:"complaintId"`
}

// Create records a new complaint for the authenticated student. Unknown
// categories fall back to others. When no priority is given the classifier
// is consulted; if it is unavailable the complaint starts as medium.
func (uc *ComplaintUseCase) Create(ctx context.Context, userID string, input CreateComplaintInput) (*entity.Complaint, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	category := entity.Category(input.Category)
	if !category.Valid() {
		category = entity.CategoryOthers
	}

	priority := entity.Priority(input.Priority)
	if priority != entity.PriorityLow && priority != entity.PriorityMedium && priority != entity.PriorityHigh {
		priority = uc.classifyOrDefault(ctx, input.Title+" "+input.Description)
	}

	studentID := input.StudentID
	if studentID == "" {
		studentID = user.StudentID
	}
	if studentID == "" {
		studentID = user.ID
	}
	department := input.Department
	if department == "" {
		department = user.Department
	}

	complaint := &entity.Complaint{
		Title:       input.Title,
		Description: input.Description,
		Category:    category,
		Status:      entity.StatusPending,
		Priority:    priority,
		StudentID:   studentID,
		StudentName: user.Name,
		Department:  department,
		Comments:    []entity.Comment{},
		Updates:     []entity.ComplaintUpdate{},
	}

	if input.Image != "" {
		complaint.ImageUrl = uc.storeImage(ctx, input.Image)
	}

	if err := uc.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}

	uc.broadcast("complaint_created", complaint.ID)
	return complaint, nil
}

// storeImage offloads data URLs past the inline limit to object storage and
// keeps smaller ones inline. An upload failure degrades to inline rather
// than failing the submission.
func (uc *ComplaintUseCase) storeImage(ctx context.Context, image string) string {
	if uc.images == nil || !strings.HasPrefix(image, "data:") || int64(len(image)) <= uc.inlineImageLimit {
		return image
	}
	url, err := uc.images.UploadDataURL(ctx, image)
	if err != nil {
		logger.Warn("Image upload failed, storing inline: %v", err)
		return image
	}
	return url
}

func (uc *ComplaintUseCase) classifyOrDefault(ctx context.Context, text string) entity.Priority {
	if uc.classifier == nil {
		return entity.PriorityMedium
	}
	priority, err := uc.classifier.Classify(ctx, text)
	if err != nil {
		logger.Warn("Priority classification failed, defaulting to medium: %v", err)
		return entity.PriorityMedium
	}
	return priority
}

// ClassifyPriority exposes the classifier directly for the admin preview
// endpoint.
func (uc *ComplaintUseCase) ClassifyPriority(ctx context.Context, text string) (entity.Priority, error) {
	if uc.classifier == nil {
		return "", errors.Internal("Priority classification is not configured", nil)
	}
	return uc.classifier.Classify(ctx, text)
}

func (uc *ComplaintUseCase) ListAll(ctx context.Context) ([]*entity.Complaint, error) {
	return uc.complaintRepo.List(ctx, repository.ComplaintFilter{})
}

func (uc *ComplaintUseCase) ListForStudent(ctx context.Context, studentID string) ([]*entity.Complaint, error) {
	return uc.complaintRepo.List(ctx, repository.ComplaintFilter{StudentID: studentID})
}

// ListForUser lists the complaints belonging to an account. Records are
// keyed by student number, but older ones carry the account id, so both are
// queried and merged.
func (uc *ComplaintUseCase) ListForUser(ctx context.Context, userID string) ([]*entity.Complaint, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	keys := []string{user.ID}
	if user.StudentID != "" && user.StudentID != user.ID {
		keys = append(keys, user.StudentID)
	}

	seen := map[string]bool{}
	result := []*entity.Complaint{}
	for _, key := range keys {
		complaints, err := uc.complaintRepo.List(ctx, repository.ComplaintFilter{StudentID: key})
		if err != nil {
			return nil, err
		}
		for _, c := range complaints {
			if !seen[c.ID] {
				seen[c.ID] = true
				result = append(result, c)
			}
		}
	}
	return result, nil
}

// GetForUser fetches one complaint, allowing admins and the owning student
// only. Ownership matches either the stored studentId or the account id,
// since older records carry the account id there.
func (uc *ComplaintUseCase) GetForUser(ctx context.Context, userID, complaintID string) (*entity.Complaint, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	complaint, err := uc.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin() && complaint.StudentID != user.StudentID && complaint.StudentID != user.ID {
		return nil, errors.Forbidden("You do not have access to this complaint", nil)
	}
	return complaint, nil
}

type UpdateStatusInput struct {
	Status      string `json:"status" validate:"required"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
	Date        string `json:"date"`
}

// UpdateStatus applies an admin status transition and appends the structured
// update record. A rejection records its reason from the description;
// resolution stamps resolvedAt.
func (uc *ComplaintUseCase) UpdateStatus(ctx context.Context, adminID, complaintID string, input UpdateStatusInput) (*entity.Complaint, error) {
	admin, err := uc.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	status := entity.Status(input.Status)
	if !status.Valid() {
		return nil, errors.BadRequest("Invalid status value", nil)
	}

	change := repository.StatusChange{
		Status:      status,
		Description: input.Description,
		By:          admin.Name,
		AssignedTo:  input.AssignedTo,
		Date:        time.Now(),
	}
	if input.Date != "" {
		if parsed, err := time.Parse(time.RFC3339, input.Date); err == nil {
			change.Date = parsed
		}
	}

	switch status {
	case entity.StatusResolved:
		resolvedAt := change.Date
		change.ResolvedAt = &resolvedAt
	case entity.StatusRejected:
		change.RejectionReason = input.Description
		if change.RejectionReason == "" {
			change.RejectionReason = "No reason provided"
		}
	}

	if err := uc.complaintRepo.UpdateStatus(ctx, complaintID, change); err != nil {
		return nil, err
	}

	uc.broadcast("status_updated", complaintID)
	return uc.complaintRepo.GetByID(ctx, complaintID)
}

type AddCommentInput struct {
	Content   string `json:"content" validate:"required"`
	CreatedAt string `json:"createdAt"`
}

// AddComment appends one comment to the complaint's trail. The append is
// atomic at the store level, so concurrent commenters never lose entries.
func (uc *ComplaintUseCase) AddComment(ctx context.Context, userID, complaintID string, input AddCommentInput) (*entity.Complaint, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.BadRequest("Comment cannot be empty", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.GetForUser(ctx, userID, complaintID); err != nil {
		return nil, err
	}

	var createdAt interface{} = time.Now()
	if input.CreatedAt != "" {
		createdAt = input.CreatedAt
	}

	comment := entity.Comment{
		ID:          uuid.New().String(),
		ComplaintID: complaintID,
		UserID:      user.ID,
		UserName:    user.Name,
		UserRole:    string(user.Role),
		Content:     content,
		CreatedAt:   createdAt,
	}

	if err := uc.complaintRepo.AddComment(ctx, complaintID, comment); err != nil {
		return nil, err
	}

	uc.broadcast("comment_added", complaintID)
	return uc.complaintRepo.GetByID(ctx, complaintID)
}

// Watch opens a live complaint feed. If the primary store produces no first
// snapshot within the fallback window the feed emits the sample data set,
// which stays until a snapshot with content arrives. Any snapshot, empty
// included, marks the subscription healthy; only once the fallback has fired
// do empty snapshots stop displacing the samples.
func (uc *ComplaintUseCase) Watch(ctx context.Context, filter repository.ComplaintFilter) (*repository.Subscription, error) {
	primary, err := uc.complaintRepo.Watch(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make(chan []*entity.Complaint, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)

		timer := time.NewTimer(uc.watchFallback)
		defer timer.Stop()

		usingFallback := false
		received := false
		for {
			select {
			case complaints, ok := <-primary.C:
				if !ok {
					return
				}
				received = true
				if len(complaints) == 0 && usingFallback {
					continue
				}
				usingFallback = false
				sendLatest(out, complaints)
			case <-timer.C:
				if received || uc.fallbackRepo == nil {
					continue
				}
				samples := uc.sampleData(ctx, filter)
				if len(samples) == 0 {
					continue
				}
				logger.Warn("Complaint feed silent after %s, serving sample data", uc.watchFallback)
				usingFallback = true
				sendLatest(out, samples)
			case <-done:
				return
			}
		}
	}()

	return repository.NewSubscription(out, func() {
		close(done)
		primary.Close()
	}), nil
}

// sampleData lists the placeholder set for a stalled feed. Samples are not
// tied to any student, so a scoped watch gets them stamped with its own
// student id instead of filtered away.
func (uc *ComplaintUseCase) sampleData(ctx context.Context, filter repository.ComplaintFilter) []*entity.Complaint {
	samples, err := uc.fallbackRepo.List(ctx, repository.ComplaintFilter{})
	if err != nil {
		return nil
	}
	if filter.StudentID != "" {
		for _, sample := range samples {
			sample.StudentID = filter.StudentID
		}
	}
	return samples
}

// sendLatest delivers on a capacity-one channel, replacing a pending value
// so slow consumers always see the newest snapshot.
func sendLatest(ch chan []*entity.Complaint, complaints []*entity.Complaint) {
	for {
		select {
		case ch <- complaints:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func (uc *ComplaintUseCase) broadcast(eventType, complaintID string) {
	if uc.broadcaster == nil {
		return
	}
	payload, err := json.Marshal(ComplaintEvent{Type: eventType, ComplaintID: complaintID})
	if err != nil {
		return
	}
	uc.broadcaster.Broadcast(payload)
}

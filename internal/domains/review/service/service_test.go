package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activitymodel "citylocal-backend/internal/domains/activity/model"
	"citylocal-backend/internal/domains/review/model"
	"citylocal-backend/internal/shared"
)

// ============================================================================
// In-memory fakes
// ============================================================================

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*model.Review
	votes   map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews: map[uuid.UUID]*model.Review{},
		votes:   map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (f *fakeReviewRepo) Create(ctx context.Context, r *model.Review) error {
	for _, existing := range f.reviews {
		if existing.BusinessID == r.BusinessID && existing.UserID == r.UserID {
			return model.ErrDuplicateReview
		}
	}
	clone := *r
	f.reviews[r.ID] = &clone
	return nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, r *model.Review) error {
	stored, ok := f.reviews[r.ID]
	if !ok {
		return model.ErrReviewNotFound
	}
	clone := *r
	clone.IsReported = stored.IsReported
	clone.ReportReason = stored.ReportReason
	f.reviews[r.ID] = &clone
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.reviews[id]; !ok {
		return model.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) DeleteByBusiness(ctx context.Context, businessID uuid.UUID) (int64, error) {
	var n int64
	for id, r := range f.reviews {
		if r.BusinessID == businessID {
			delete(f.reviews, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, page, limit int) ([]*model.Review, int, error) {
	var out []*model.Review
	for _, r := range f.reviews {
		if r.BusinessID == businessID && r.IsApproved {
			clone := *r
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviewRepo) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.Review, int, error) {
	var out []*model.Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			clone := *r
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviewRepo) AdminList(ctx context.Context, filter string, page, limit int) ([]*model.Review, int, error) {
	var out []*model.Review
	for _, r := range f.reviews {
		switch filter {
		case model.FilterPending:
			if r.IsApproved {
				continue
			}
		case model.FilterApproved:
			if !r.IsApproved {
				continue
			}
		case model.FilterReported:
			if !r.IsReported {
				continue
			}
		}
		clone := *r
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeReviewRepo) ApprovedRatings(ctx context.Context, businessID uuid.UUID) ([]int, error) {
	var ratings []int
	for _, r := range f.reviews {
		if r.BusinessID == businessID && r.IsApproved {
			ratings = append(ratings, r.Rating)
		}
	}
	return ratings, nil
}

func (f *fakeReviewRepo) SetModeration(ctx context.Context, id uuid.UUID, approved bool) error {
	r, ok := f.reviews[id]
	if !ok {
		return model.ErrReviewNotFound
	}
	r.IsApproved = approved
	r.IsReported = false
	r.ReportReason = nil
	return nil
}

func (f *fakeReviewRepo) SetResponse(ctx context.Context, id uuid.UUID, text string, at time.Time) error {
	r, ok := f.reviews[id]
	if !ok {
		return model.ErrReviewNotFound
	}
	r.ResponseText = &text
	r.ResponseAt = &at
	return nil
}

func (f *fakeReviewRepo) SetReported(ctx context.Context, id uuid.UUID, reason string) error {
	r, ok := f.reviews[id]
	if !ok {
		return model.ErrReviewNotFound
	}
	r.IsReported = true
	r.ReportReason = &reason
	return nil
}

func (f *fakeReviewRepo) ToggleHelpful(ctx context.Context, reviewID, userID uuid.UUID) (bool, int, error) {
	r, ok := f.reviews[reviewID]
	if !ok {
		return false, 0, model.ErrReviewNotFound
	}
	if f.votes[reviewID] == nil {
		f.votes[reviewID] = map[uuid.UUID]bool{}
	}
	marked := !f.votes[reviewID][userID]
	if marked {
		f.votes[reviewID][userID] = true
	} else {
		delete(f.votes[reviewID], userID)
	}
	r.HelpfulCount = len(f.votes[reviewID])
	return marked, r.HelpfulCount, nil
}

func (f *fakeReviewRepo) CountPending(ctx context.Context) (int, error) {
	out, n, _ := f.AdminList(ctx, model.FilterPending, 1, 100)
	_ = out
	return n, nil
}

func (f *fakeReviewRepo) CountAll(ctx context.Context) (int, error) {
	return len(f.reviews), nil
}

func (f *fakeReviewRepo) ListRecent(ctx context.Context, limit int) ([]*model.Review, error) {
	out, _, _ := f.AdminList(ctx, "", 1, limit)
	return out, nil
}

// fakeBusinessGateway tracks the latest aggregate written per business.
type fakeBusinessGateway struct {
	owners   map[uuid.UUID]*uuid.UUID
	active   map[uuid.UUID]bool
	averages map[uuid.UUID]float64
	counts   map[uuid.UUID]int
}

func newFakeBusinessGateway() *fakeBusinessGateway {
	return &fakeBusinessGateway{
		owners:   map[uuid.UUID]*uuid.UUID{},
		active:   map[uuid.UUID]bool{},
		averages: map[uuid.UUID]float64{},
		counts:   map[uuid.UUID]int{},
	}
}

func (f *fakeBusinessGateway) addBusiness(ownerID *uuid.UUID, isActive bool) uuid.UUID {
	id := uuid.New()
	f.owners[id] = ownerID
	f.active[id] = isActive
	return id
}

func (f *fakeBusinessGateway) Lookup(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error) {
	active, ok := f.active[id]
	if !ok {
		return nil, false, model.ErrReviewNotFound
	}
	return f.owners[id], active, nil
}

func (f *fakeBusinessGateway) UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int) error {
	f.averages[id] = average
	f.counts[id] = count
	return nil
}

type stubRecorder struct {
	types []activitymodel.ActivityType
}

func (s *stubRecorder) Record(t activitymodel.ActivityType, description string, refs activitymodel.Refs, metadata map[string]interface{}) {
	s.types = append(s.types, t)
}

// ============================================================================
// Fixture
// ============================================================================

type fixture struct {
	service    ServiceInterface
	repo       *fakeReviewRepo
	businesses *fakeBusinessGateway
	recorder   *stubRecorder
	businessID uuid.UUID
	ownerID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:       newFakeReviewRepo(),
		businesses: newFakeBusinessGateway(),
		recorder:   &stubRecorder{},
		ownerID:    uuid.New(),
	}
	f.businessID = f.businesses.addBusiness(&f.ownerID, true)
	f.service = NewReviewService(f.repo, f.businesses, f.recorder)

	return f
}

func reviewer() shared.Actor {
	return shared.Actor{ID: uuid.New(), Email: "reviewer@example.com", Role: shared.RoleUser}
}

func admin() shared.Actor {
	return shared.Actor{ID: uuid.New(), Email: "admin@example.com", Role: shared.RoleAdmin}
}

func reviewTitle(s string) *string { return &s }

func (f *fixture) createReview(t *testing.T, actor shared.Actor, rating int) *model.Review {
	t.Helper()
	review, err := f.service.Create(context.Background(), actor, &model.CreateReviewRequest{
		BusinessID: f.businessID,
		Rating:     rating,
		Title:      reviewTitle("Worth a visit"),
		Comment:    "Solid experience overall",
	})
	require.NoError(t, err)
	return review
}

// ============================================================================
// Creation
// ============================================================================

func TestCreateReviewStartsUnapproved(t *testing.T) {
	f := newFixture(t)

	review := f.createReview(t, reviewer(), 4)

	assert.False(t, review.IsApproved)
	assert.Equal(t, 4, review.Rating)
	assert.Contains(t, f.recorder.types, activitymodel.TypeReviewSubmitted)

	// Unapproved reviews do not feed the aggregate.
	assert.Zero(t, f.businesses.counts[f.businessID])
}

func TestCreateDuplicateReview(t *testing.T) {
	f := newFixture(t)
	actor := reviewer()

	f.createReview(t, actor, 4)

	_, err := f.service.Create(context.Background(), actor, &model.CreateReviewRequest{
		BusinessID: f.businessID,
		Rating:     5,
		Title:      reviewTitle("Second thoughts"),
		Comment:    "Changed my mind, even better",
	})
	assert.ErrorIs(t, err, model.ErrDuplicateReview)
}

func TestCreateReviewOnOwnBusiness(t *testing.T) {
	f := newFixture(t)
	owner := shared.Actor{ID: f.ownerID, Role: shared.RoleBusinessOwner}

	_, err := f.service.Create(context.Background(), owner, &model.CreateReviewRequest{
		BusinessID: f.businessID,
		Rating:     5,
		Title:      reviewTitle("Five stars"),
		Comment:    "We are simply the best",
	})
	assert.ErrorIs(t, err, model.ErrOwnBusiness)
}

func TestCreateReviewOnUnpublishedBusiness(t *testing.T) {
	f := newFixture(t)
	hidden := f.businesses.addBusiness(nil, false)

	_, err := f.service.Create(context.Background(), reviewer(), &model.CreateReviewRequest{
		BusinessID: hidden,
		Rating:     3,
		Title:      reviewTitle("Sneak preview"),
		Comment:    "Should not be possible",
	})
	assert.ErrorIs(t, err, model.ErrNotReviewable)
}

func TestCreateReviewRequiresTitle(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), reviewer(), &model.CreateReviewRequest{
		BusinessID: f.businessID,
		Rating:     5,
		Comment:    "Great service",
	})
	assert.Error(t, err)

	// A blank title is normalized away and rejected the same way.
	_, err = f.service.Create(context.Background(), reviewer(), &model.CreateReviewRequest{
		BusinessID: f.businessID,
		Rating:     5,
		Title:      reviewTitle("   "),
		Comment:    "Great service",
	})
	assert.Error(t, err)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), reviewer(), &model.CreateReviewRequest{
		BusinessID: f.businessID,
		Rating:     6,
		Title:      reviewTitle("Too good"),
		Comment:    "Off the scale",
	})
	assert.Error(t, err)
}

// ============================================================================
// Moderation and the rating aggregate
// ============================================================================

func TestApproveRecomputesAggregate(t *testing.T) {
	f := newFixture(t)

	first := f.createReview(t, reviewer(), 3)
	second := f.createReview(t, reviewer(), 5)

	_, err := f.service.Moderate(context.Background(), admin(), first.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 3.0, f.businesses.averages[f.businessID])
	assert.Equal(t, 1, f.businesses.counts[f.businessID])

	_, err = f.service.Moderate(context.Background(), admin(), second.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 4.0, f.businesses.averages[f.businessID])
	assert.Equal(t, 2, f.businesses.counts[f.businessID])

	assert.Contains(t, f.recorder.types, activitymodel.TypeReviewApproved)
}

func TestAggregateRounding(t *testing.T) {
	f := newFixture(t)

	for _, rating := range []int{5, 5, 4} {
		review := f.createReview(t, reviewer(), rating)
		_, err := f.service.Moderate(context.Background(), admin(), review.ID, true)
		require.NoError(t, err)
	}

	// 14/3 = 4.666..., rounded to one decimal place.
	assert.Equal(t, 4.7, f.businesses.averages[f.businessID])
	assert.Equal(t, 3, f.businesses.counts[f.businessID])
}

func TestWithdrawRecomputesAggregate(t *testing.T) {
	f := newFixture(t)

	review := f.createReview(t, reviewer(), 5)
	_, err := f.service.Moderate(context.Background(), admin(), review.ID, true)
	require.NoError(t, err)
	require.Equal(t, 1, f.businesses.counts[f.businessID])

	_, err = f.service.Moderate(context.Background(), admin(), review.ID, false)
	require.NoError(t, err)

	assert.Equal(t, 0.0, f.businesses.averages[f.businessID])
	assert.Equal(t, 0, f.businesses.counts[f.businessID])
}

func TestEditResetsApproval(t *testing.T) {
	f := newFixture(t)
	actor := reviewer()

	review := f.createReview(t, actor, 5)
	_, err := f.service.Moderate(context.Background(), admin(), review.ID, true)
	require.NoError(t, err)

	rating := 2
	updated, err := f.service.Update(context.Background(), actor, review.ID, &model.UpdateReviewRequest{Rating: &rating})
	require.NoError(t, err)

	assert.False(t, updated.IsApproved)
	assert.Equal(t, 2, updated.Rating)

	// The edited review left the approved pool, so the aggregate dropped.
	assert.Equal(t, 0, f.businesses.counts[f.businessID])
}

func TestUpdateByStrangerForbidden(t *testing.T) {
	f := newFixture(t)
	review := f.createReview(t, reviewer(), 4)

	comment := "hijacked"
	_, err := f.service.Update(context.Background(), reviewer(), review.ID, &model.UpdateReviewRequest{Comment: &comment})
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestDeleteApprovedRecomputesAggregate(t *testing.T) {
	f := newFixture(t)
	actor := reviewer()

	review := f.createReview(t, actor, 5)
	_, err := f.service.Moderate(context.Background(), admin(), review.ID, true)
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), actor, review.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, f.businesses.counts[f.businessID])
	assert.Contains(t, f.recorder.types, activitymodel.TypeReviewDeleted)
}

func TestDeleteByAdmin(t *testing.T) {
	f := newFixture(t)
	review := f.createReview(t, reviewer(), 2)

	err := f.service.Delete(context.Background(), admin(), review.ID)
	assert.NoError(t, err)
}

func TestDeleteByStrangerForbidden(t *testing.T) {
	f := newFixture(t)
	review := f.createReview(t, reviewer(), 2)

	err := f.service.Delete(context.Background(), reviewer(), review.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

// ============================================================================
// Responses, votes, reports
// ============================================================================

func TestRespondByBusinessOwner(t *testing.T) {
	f := newFixture(t)
	review := f.createReview(t, reviewer(), 4)
	owner := shared.Actor{ID: f.ownerID, Role: shared.RoleBusinessOwner}

	updated, err := f.service.Respond(context.Background(), owner, review.ID, &model.RespondRequest{
		Text: "Thank you for the kind words",
	})
	require.NoError(t, err)

	require.NotNil(t, updated.ResponseText)
	assert.Equal(t, "Thank you for the kind words", *updated.ResponseText)
	assert.NotNil(t, updated.ResponseAt)
}

func TestRespondByStrangerForbidden(t *testing.T) {
	f := newFixture(t)
	review := f.createReview(t, reviewer(), 4)

	_, err := f.service.Respond(context.Background(), reviewer(), review.ID, &model.RespondRequest{
		Text: "Not my shop but thanks",
	})
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestToggleHelpfulFlips(t *testing.T) {
	f := newFixture(t)
	review := f.createReview(t, reviewer(), 4)
	voter := reviewer()

	first, err := f.service.ToggleHelpful(context.Background(), voter, review.ID)
	require.NoError(t, err)
	assert.True(t, first.Marked)
	assert.Equal(t, 1, first.HelpfulCount)

	second, err := f.service.ToggleHelpful(context.Background(), voter, review.ID)
	require.NoError(t, err)
	assert.False(t, second.Marked)
	assert.Equal(t, 0, second.HelpfulCount)
}

func TestReportReview(t *testing.T) {
	f := newFixture(t)
	review := f.createReview(t, reviewer(), 1)

	err := f.service.Report(context.Background(), reviewer(), review.ID, &model.ReportRequest{
		Reason: "offensive language",
	})
	require.NoError(t, err)

	stored, err := f.repo.GetByID(context.Background(), review.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsReported)
	require.NotNil(t, stored.ReportReason)
	assert.Equal(t, "offensive language", *stored.ReportReason)
}

// ============================================================================
// Listings
// ============================================================================

func TestListByBusinessShowsOnlyApproved(t *testing.T) {
	f := newFixture(t)

	approved := f.createReview(t, reviewer(), 5)
	f.createReview(t, reviewer(), 1)

	_, err := f.service.Moderate(context.Background(), admin(), approved.ID, true)
	require.NoError(t, err)

	result, err := f.service.ListByBusiness(context.Background(), f.businessID, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Reviews, 1)
	assert.Equal(t, approved.ID, result.Reviews[0].ID)
}

func TestAdminListPendingFilter(t *testing.T) {
	f := newFixture(t)

	approved := f.createReview(t, reviewer(), 5)
	pending := f.createReview(t, reviewer(), 2)

	_, err := f.service.Moderate(context.Background(), admin(), approved.ID, true)
	require.NoError(t, err)

	result, err := f.service.AdminList(context.Background(), model.FilterPending, 1, 10)
	require.NoError(t, err)

	require.Len(t, result.Reviews, 1)
	assert.Equal(t, pending.ID, result.Reviews[0].ID)
}
